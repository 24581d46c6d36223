package utils

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("supported_media", validateMediaMimeType)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Desteklenen medya formatları
var supportedMimeTypes = map[string]string{
	"image/jpeg": "image",
	"image/png":  "image",
	"image/webp": "image",
	"video/mp4":  "video",
	"video/webm": "video",
	"audio/mpeg": "audio",
	"audio/wav":  "audio",
	"audio/ogg":  "audio",
}

func validateMediaMimeType(fl validator.FieldLevel) bool {
	_, ok := supportedMimeTypes[fl.Field().String()]
	return ok
}

// MediaTypeForMime mime type'tan medya türünü döner ("" = desteklenmiyor)
func MediaTypeForMime(mimeType string) string {
	return supportedMimeTypes[mimeType]
}
