package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/client"
	"github.com/dmitrijs2005/foodlink/internal/client/config"
	"github.com/dmitrijs2005/foodlink/internal/client/models"
	"github.com/dmitrijs2005/foodlink/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonate_CreatesCookedDonation(t *testing.T) {
	expiry := later(6)
	ta := newTestApp(claims.RoleDonor, "cooked", "veg biryani", "3.5", "", expiry)

	require.NoError(t, ta.Donate(context.Background()))

	require.NotNil(t, ta.donations.created)
	assert.Equal(t, models.FoodCooked, ta.donations.created.FoodType)
	assert.Equal(t, "veg biryani", ta.donations.created.Description)
	assert.Equal(t, 3.5, ta.donations.created.QuantityKg)
	assert.Nil(t, ta.donations.created.CookedTime)
	assert.Equal(t, expiry, ta.donations.created.ExpiryTime.Format(timeLayout))
	assert.Contains(t, ta.out.String(), "Donation #42 created.")
}

func TestDonate_RejectsBadInput(t *testing.T) {
	ta := newTestApp(claims.RoleDonor, "soup")

	require.ErrorIs(t, ta.Donate(context.Background()), models.ErrUnknownFoodType)
	assert.Nil(t, ta.donations.created)
}

func TestDonate_NGOIsRefused(t *testing.T) {
	ta := newTestApp(claims.RoleNGO)

	require.ErrorIs(t, ta.Donate(context.Background()), session.ErrWrongRole)
	assert.Contains(t, ta.out.String(), "Only DONOR users can create donations.")
}

func TestRequest_ShowsExactServerMessage(t *testing.T) {
	ta := newTestApp(claims.RoleNGO, "4", later(2))
	ta.donations.list = []models.Donation{
		{ID: 4, FoodType: models.FoodRaw, Description: "tomatoes", QuantityKg: 10, Status: models.DonationAvailable},
		{ID: 5, FoodType: models.FoodRaw, Description: "onions", QuantityKg: 3, Status: models.DonationRequested},
	}
	ta.requests.createErr = fmt.Errorf("create request: %w", &client.Error{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"non_field_errors":["This donation has already been requested."]}`),
	})

	require.Error(t, ta.Request(context.Background()))

	out := ta.out.String()
	assert.Contains(t, out, "tomatoes")
	assert.NotContains(t, out, "onions")
	assert.Contains(t, out, "This donation has already been requested.")
	assert.NotContains(t, out, "Failed to create request")
	require.NotNil(t, ta.requests.created)
	assert.Equal(t, int64(4), ta.requests.created.DonationID)
}

func TestRequest_FallbackMessage(t *testing.T) {
	ta := newTestApp(claims.RoleNGO, "4", later(2))
	ta.donations.list = []models.Donation{{ID: 4, Status: models.DonationAvailable}}
	ta.requests.createErr = &client.Error{StatusCode: http.StatusInternalServerError}

	require.Error(t, ta.Request(context.Background()))
	assert.Contains(t, ta.out.String(), "Failed to create request")
}

func TestRequest_UnknownDonationIsRejectedLocally(t *testing.T) {
	ta := newTestApp(claims.RoleNGO, "9")
	ta.donations.list = []models.Donation{{ID: 4, Status: models.DonationAvailable}}

	require.Error(t, ta.Request(context.Background()))
	assert.Contains(t, ta.out.String(), "donation #9 is not available")
	assert.Nil(t, ta.requests.created)
}

func TestRequest_Success(t *testing.T) {
	pickup := later(3)
	ta := newTestApp(claims.RoleNGO, "4", pickup)
	ta.donations.list = []models.Donation{{ID: 4, Status: models.DonationAvailable}}

	require.NoError(t, ta.Request(context.Background()))

	require.NotNil(t, ta.requests.created)
	want, err := time.ParseInLocation(timeLayout, pickup, time.Local)
	require.NoError(t, err)
	assert.True(t, want.Equal(ta.requests.created.PickupTime))
	assert.Contains(t, ta.out.String(), "Request #77 created.")
}

// slowReader waits before every read, like a user taking time to type.
type slowReader struct {
	r     io.Reader
	delay time.Duration
}

func (s slowReader) Read(p []byte) (int, error) {
	time.Sleep(s.delay)
	return s.r.Read(p)
}

func TestRequest_TypingTimeDoesNotCountAgainstTimeout(t *testing.T) {
	ta := newTestApp(claims.RoleNGO)
	ta.config = &config.Config{RequestTimeout: 50 * time.Millisecond}
	ta.reader = bufio.NewReader(slowReader{
		r:     strings.NewReader("4\n" + later(2) + "\n"),
		delay: 150 * time.Millisecond,
	})
	ta.donations.list = []models.Donation{{ID: 4, Status: models.DonationAvailable}}

	require.NoError(t, ta.Request(context.Background()))

	require.NotNil(t, ta.requests.created)
	assert.Contains(t, ta.out.String(), "Request #77 created.")
}

func TestApproveAndComplete(t *testing.T) {
	donor := newTestApp(claims.RoleDonor)
	require.NoError(t, donor.Approve(context.Background(), []string{"12"}))
	assert.Equal(t, []int64{12}, donor.requests.approved)
	assert.Contains(t, donor.out.String(), "Request approved successfully")

	require.ErrorIs(t, donor.Complete(context.Background(), []string{"12"}), session.ErrWrongRole)
	assert.Empty(t, donor.requests.completed)

	ngo := newTestApp(claims.RoleNGO)
	require.NoError(t, ngo.Complete(context.Background(), []string{"#13"}))
	assert.Equal(t, []int64{13}, ngo.requests.completed)

	require.Error(t, ngo.Complete(context.Background(), nil))
	assert.Contains(t, ngo.out.String(), "Usage: complete <id>")
}

func TestApprove_ServerRefusal(t *testing.T) {
	ta := newTestApp(claims.RoleDonor)
	ta.requests.actionErr = &client.Error{
		StatusCode: http.StatusBadRequest,
		Body:       []byte(`{"detail":"Request is not pending."}`),
	}

	require.Error(t, ta.Approve(context.Background(), []string{"12"}))
	assert.Contains(t, ta.out.String(), "Request is not pending.")
}

func TestCommands_SessionExpired(t *testing.T) {
	ta := newTestApp(claims.RoleDonor)
	ta.donations.listErr = fmt.Errorf("list donations: %w", client.ErrRefreshFailed)

	require.Error(t, ta.Donations(context.Background()))
	assert.Contains(t, ta.out.String(), "Session expired. Please log in again.")
}

func TestListings(t *testing.T) {
	dist := 1.2
	ta := newTestApp(claims.RoleDonor)
	ta.donations.list = []models.Donation{{
		ID: 1, FoodType: models.FoodPackaged, Description: "biscuits", QuantityKg: 2, Status: models.DonationAvailable,
		Donor: &models.UserRef{ID: 5, Username: "tester"}, DistanceKm: &dist,
		RiskAssessment: &models.RiskAssessment{RiskLevel: models.RiskMedium},
	}}
	ta.requests.list = []models.FoodRequest{
		{ID: 9, Status: models.RequestPending, Donation: models.DonationRef{ID: 1}, NGO: &models.UserRef{ID: 7, Username: "helpers"}},
		{ID: 10, Status: models.RequestApproved, Donation: models.DonationRef{ID: 1}},
	}
	ta.stats.impact = models.ImpactStats{TotalMealsSaved: 12, TotalFoodSavedKg: 5.5, TotalCO2SavedKg: 13.75, TotalDonations: 1}

	require.NoError(t, ta.Donations(context.Background()))
	require.NoError(t, ta.Requests(context.Background()))
	require.NoError(t, ta.Stats(context.Background()))
	require.NoError(t, ta.Dashboard(context.Background()))

	out := ta.out.String()
	for _, want := range []string{
		"biscuits", "1.2 km", "MEDIUM",
		"helpers", "approve 9",
		"13.75",
		"Welcome, tester!", "PACKAGED - 2 kg - AVAILABLE", "Request #9 - PENDING",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "approve 10")
}

func TestHeatmap(t *testing.T) {
	ta := newTestApp(claims.RoleNGO)
	require.NoError(t, ta.Heatmap(context.Background()))
	assert.Contains(t, ta.out.String(), "No donation data available for heatmap")

	ta.stats.heatmap = []models.HeatmapPoint{{Latitude: 12.97, Longitude: 77.59, Count: 3, TotalQuantityKg: 8}}
	require.NoError(t, ta.Heatmap(context.Background()))
	assert.Contains(t, ta.out.String(), "Location 1")
	assert.Contains(t, ta.out.String(), "12.970000")
}
