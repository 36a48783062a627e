// Package models defines the API payloads exchanged with the FoodLink backend.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type FoodType string

const (
	FoodCooked   FoodType = "COOKED"
	FoodPackaged FoodType = "PACKAGED"
	FoodRaw      FoodType = "RAW"
)

var FoodTypes = []FoodType{FoodCooked, FoodPackaged, FoodRaw}

type DonationStatus string

const (
	DonationAvailable DonationStatus = "AVAILABLE"
	DonationRequested DonationStatus = "REQUESTED"
	DonationPickedUp  DonationStatus = "PICKED_UP"
	DonationExpired   DonationStatus = "EXPIRED"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

var (
	ErrUnknownFoodType     = invalid("unknown food type")
	ErrDescriptionRequired = invalid("description is required")
	ErrQuantityNotPositive = invalid("quantity must be greater than zero")
	ErrExpiryRequired      = invalid("expiry time is required")
)

// ParseFoodType accepts the API value in any case.
func ParseFoodType(s string) (FoodType, error) {
	ft := FoodType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range FoodTypes {
		if ft == known {
			return ft, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFoodType, s)
}

type RiskAssessment struct {
	RiskLevel RiskLevel `json:"risk_level"`
	Reason    string    `json:"reason"`
}

type Donation struct {
	ID             int64           `json:"id"`
	Donor          *UserRef        `json:"donor,omitempty"`
	FoodType       FoodType        `json:"food_type"`
	Description    string          `json:"description"`
	QuantityKg     float64         `json:"quantity_kg"`
	CookedTime     *time.Time      `json:"cooked_time"`
	ExpiryTime     time.Time       `json:"expiry_time"`
	Status         DonationStatus  `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	DistanceKm     *float64        `json:"distance_km,omitempty"`
	RiskAssessment *RiskAssessment `json:"risk_assessment,omitempty"`
}

func (d Donation) Available() bool {
	return d.Status == DonationAvailable
}

// NewDonation is the create-donation form.
type NewDonation struct {
	FoodType    FoodType   `json:"food_type"`
	Description string     `json:"description"`
	QuantityKg  float64    `json:"quantity_kg"`
	CookedTime  *time.Time `json:"cooked_time,omitempty"`
	ExpiryTime  time.Time  `json:"expiry_time"`
}

// Validate checks the fields the server requires. A cooked time on
// non-cooked food is dropped rather than rejected.
func (n *NewDonation) Validate() error {
	var errs []error
	if _, err := ParseFoodType(string(n.FoodType)); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(n.Description) == "" {
		errs = append(errs, ErrDescriptionRequired)
	}
	if n.QuantityKg <= 0 {
		errs = append(errs, ErrQuantityNotPositive)
	}
	if n.ExpiryTime.IsZero() {
		errs = append(errs, ErrExpiryRequired)
	}
	if n.FoodType != FoodCooked {
		n.CookedTime = nil
	}
	return errors.Join(errs...)
}

// FilterAvailable keeps the donations that can still be requested.
func FilterAvailable(ds []Donation) []Donation {
	out := make([]Donation, 0, len(ds))
	for _, d := range ds {
		if d.Available() {
			out = append(out, d)
		}
	}
	return out
}
