package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestApproved  RequestStatus = "APPROVED"
	RequestCompleted RequestStatus = "COMPLETED"
)

var (
	ErrDonationRequired   = invalid("donation is required")
	ErrPickupTimeRequired = invalid("pickup time is required")
)

// DonationRef is the donation a request points at: the full nested object
// when the server expands it, otherwise only its ID.
type DonationRef struct {
	ID       int64
	Donation *Donation
}

func (r *DonationRef) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*r = DonationRef{ID: id}
		return nil
	}
	var d Donation
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*r = DonationRef{ID: d.ID, Donation: &d}
	return nil
}

func (r DonationRef) MarshalJSON() ([]byte, error) {
	if r.Donation != nil {
		return json.Marshal(r.Donation)
	}
	return json.Marshal(r.ID)
}

type FoodRequest struct {
	ID          int64         `json:"id"`
	Donation    DonationRef   `json:"donation"`
	NGO         *UserRef      `json:"ngo,omitempty"`
	PickupTime  time.Time     `json:"pickup_time"`
	Status      RequestStatus `json:"status"`
	RequestedAt time.Time     `json:"requested_at"`
}

// NewFoodRequest is the create-request form.
type NewFoodRequest struct {
	DonationID int64
	PickupTime time.Time
}

func (n NewFoodRequest) Validate() error {
	var errs []error
	if n.DonationID <= 0 {
		errs = append(errs, ErrDonationRequired)
	}
	if n.PickupTime.IsZero() {
		errs = append(errs, ErrPickupTimeRequired)
	}
	return errors.Join(errs...)
}

// MarshalJSON sends the pickup time as an RFC 3339 UTC instant.
func (n NewFoodRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Donation   int64  `json:"donation"`
		PickupTime string `json:"pickup_time"`
	}{
		Donation:   n.DonationID,
		PickupTime: n.PickupTime.UTC().Format(time.RFC3339),
	})
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
