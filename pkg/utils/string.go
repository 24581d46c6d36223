package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericCode doğrulama kodları için 6 haneli güvenli kod üretir
func GenerateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
