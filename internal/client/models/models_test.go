package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodlink/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFoodType(t *testing.T) {
	ft, err := ParseFoodType(" cooked ")
	require.NoError(t, err)
	assert.Equal(t, FoodCooked, ft)

	_, err = ParseFoodType("frozen")
	require.ErrorIs(t, err, ErrUnknownFoodType)
}

func TestNewDonation_Validate(t *testing.T) {
	cooked := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	expiry := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)

	t.Run("valid cooked", func(t *testing.T) {
		n := NewDonation{FoodType: FoodCooked, Description: "rice", QuantityKg: 2.5, CookedTime: &cooked, ExpiryTime: expiry}
		require.NoError(t, n.Validate())
		require.NotNil(t, n.CookedTime)
	})

	t.Run("cooked time dropped for packaged", func(t *testing.T) {
		n := NewDonation{FoodType: FoodPackaged, Description: "biscuits", QuantityKg: 1, CookedTime: &cooked, ExpiryTime: expiry}
		require.NoError(t, n.Validate())
		assert.Nil(t, n.CookedTime)

		b, err := json.Marshal(n)
		require.NoError(t, err)
		assert.NotContains(t, string(b), "cooked_time")
	})

	t.Run("all problems reported", func(t *testing.T) {
		n := NewDonation{FoodType: "SOUP", QuantityKg: 0}
		err := n.Validate()
		require.ErrorIs(t, err, ErrUnknownFoodType)
		require.ErrorIs(t, err, ErrDescriptionRequired)
		require.ErrorIs(t, err, ErrQuantityNotPositive)
		require.ErrorIs(t, err, ErrExpiryRequired)
		require.ErrorIs(t, err, common.ErrInvalidInput)
		assert.NotErrorIs(t, ErrDescriptionRequired, ErrExpiryRequired)
		assert.Equal(t, "description is required", ErrDescriptionRequired.Error())
	})
}

func TestDonation_DecodeServerPayload(t *testing.T) {
	payload := `{
		"id": 4,
		"donor": {"id": 1, "username": "alice"},
		"food_type": "COOKED",
		"description": "biryani",
		"quantity_kg": 3.5,
		"cooked_time": null,
		"expiry_time": "2026-10-17T20:00:00Z",
		"status": "AVAILABLE",
		"created_at": "2026-10-17T09:15:30.123456Z",
		"distance_km": 2.4,
		"risk_assessment": {"risk_level": "LOW", "reason": "fresh"}
	}`

	var d Donation
	require.NoError(t, json.Unmarshal([]byte(payload), &d))

	dist := 2.4
	want := Donation{
		ID:             4,
		Donor:          &UserRef{ID: 1, Username: "alice"},
		FoodType:       FoodCooked,
		Description:    "biryani",
		QuantityKg:     3.5,
		ExpiryTime:     time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC),
		Status:         DonationAvailable,
		CreatedAt:      time.Date(2026, 10, 17, 9, 15, 30, 123456000, time.UTC),
		DistanceKm:     &dist,
		RiskAssessment: &RiskAssessment{RiskLevel: RiskLow, Reason: "fresh"},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("decoded donation mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, d.Available())
}

func TestFilterAvailable(t *testing.T) {
	ds := []Donation{
		{ID: 1, Status: DonationAvailable},
		{ID: 2, Status: DonationRequested},
		{ID: 3, Status: DonationAvailable},
		{ID: 4, Status: DonationExpired},
	}
	got := FilterAvailable(ds)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
}

func TestFoodRequest_DonationAndNGOForms(t *testing.T) {
	t.Run("bare ids", func(t *testing.T) {
		var r FoodRequest
		require.NoError(t, json.Unmarshal([]byte(`{"id":9,"donation":4,"ngo":7,"status":"PENDING","pickup_time":"2026-10-18T10:00:00Z"}`), &r))
		assert.Equal(t, int64(4), r.Donation.ID)
		assert.Nil(t, r.Donation.Donation)
		require.NotNil(t, r.NGO)
		assert.Equal(t, "#7", r.NGO.Label())
	})

	t.Run("nested objects", func(t *testing.T) {
		var r FoodRequest
		require.NoError(t, json.Unmarshal([]byte(`{"id":9,"donation":{"id":4,"food_type":"RAW","quantity_kg":10},"ngo":{"id":7,"username":"helpers"},"status":"APPROVED"}`), &r))
		assert.Equal(t, int64(4), r.Donation.ID)
		require.NotNil(t, r.Donation.Donation)
		assert.Equal(t, FoodRaw, r.Donation.Donation.FoodType)
		assert.Equal(t, "helpers", r.NGO.Label())
		assert.Equal(t, RequestApproved, r.Status)
	})

	t.Run("bad donation", func(t *testing.T) {
		var r FoodRequest
		require.Error(t, json.Unmarshal([]byte(`{"donation":"four"}`), &r))
	})
}

func TestNewFoodRequest_WireFormat(t *testing.T) {
	loc := time.FixedZone("IST", 5*60*60+30*60)
	n := NewFoodRequest{DonationID: 4, PickupTime: time.Date(2026, 10, 18, 15, 30, 0, 0, loc)}
	require.NoError(t, n.Validate())

	b, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"donation":4,"pickup_time":"2026-10-18T10:00:00Z"}`, string(b))

	err = NewFoodRequest{}.Validate()
	require.ErrorIs(t, err, ErrDonationRequired)
	require.ErrorIs(t, err, ErrPickupTimeRequired)
	require.ErrorIs(t, err, common.ErrInvalidInput)
}
