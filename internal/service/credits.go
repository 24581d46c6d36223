package service

import (
	"fmt"

	"github.com/sefazor/aimarket-backend/internal/models"
)

// TierPolicy üyelik seviyesi başına yükleme hakları
type TierPolicy struct {
	FreeUploads    int
	PaidUploadCost float64
	AllowPaid      bool
}

var tierPolicies = map[string]TierPolicy{
	models.TierFree: {FreeUploads: 3, PaidUploadCost: 0, AllowPaid: false},
	models.TierPlus: {FreeUploads: 25, PaidUploadCost: 0.99, AllowPaid: true},
	models.TierPro:  {FreeUploads: 100, PaidUploadCost: 0.49, AllowPaid: true},
}

// PolicyForTier bilinmeyen tier free sayılır
func PolicyForTier(tier string) TierPolicy {
	if policy, ok := tierPolicies[tier]; ok {
		return policy
	}
	return tierPolicies[models.TierFree]
}

type UploadQuote struct {
	Allowed    bool    `json:"allowed"`
	Free       bool    `json:"free"`
	UsesCredit bool    `json:"uses_credit"`
	Cost       float64 `json:"cost"`
	Status     string  `json:"status"`
}

// QuoteUpload bir sonraki yüklemenin ücretsiz mi, kredili mi, ücretli mi
// yoksa engelli mi olduğunu hesaplar
func QuoteUpload(user *models.User) UploadQuote {
	policy := PolicyForTier(user.Tier)

	if user.FreeUploadsUsed < policy.FreeUploads {
		remaining := policy.FreeUploads - user.FreeUploadsUsed
		return UploadQuote{
			Allowed: true,
			Free:    true,
			Status: fmt.Sprintf("%d of %d free uploads remaining on the %s tier",
				remaining, policy.FreeUploads, user.Tier),
		}
	}

	if user.UploadCredits > 0 {
		return UploadQuote{
			Allowed:    true,
			UsesCredit: true,
			Status: fmt.Sprintf("free quota exhausted; using 1 of %d purchased upload credits",
				user.UploadCredits),
		}
	}

	if policy.AllowPaid {
		return UploadQuote{
			Allowed: false,
			Cost:    policy.PaidUploadCost,
			Status: fmt.Sprintf("free quota exhausted; the next upload costs $%.2f, purchase an upload credit to continue",
				policy.PaidUploadCost),
		}
	}

	return UploadQuote{
		Allowed: false,
		Status:  "free quota exhausted; upgrade your tier to keep uploading",
	}
}
