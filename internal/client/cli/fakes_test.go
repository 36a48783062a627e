package cli

import (
	"bufio"
	"bytes"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/models"
	"github.com/dmitrijs2005/foodlink/internal/client/session"
	"github.com/dmitrijs2005/foodlink/internal/logging"
)

type fakeSession struct {
	identity *claims.Identity

	loginUser   string
	loginPass   []byte
	loginResult session.Result

	registered     session.RegisterInput
	registerResult session.Result

	logoutCalls int
}

func (f *fakeSession) Initialize(context.Context) error { return nil }

func (f *fakeSession) Login(_ context.Context, username string, password []byte) session.Result {
	f.loginUser = username
	f.loginPass = password
	if f.loginResult.Success {
		f.identity = &claims.Identity{UserID: 1, Username: username, Role: claims.RoleDonor}
	}
	return f.loginResult
}

func (f *fakeSession) Register(_ context.Context, in session.RegisterInput) session.Result {
	f.registered = in
	return f.registerResult
}

func (f *fakeSession) Logout(context.Context) error {
	f.logoutCalls++
	f.identity = nil
	return nil
}

func (f *fakeSession) Identity() (claims.Identity, bool) {
	if f.identity == nil {
		return claims.Identity{}, false
	}
	return *f.identity, true
}

func (f *fakeSession) RequireRole(roles ...claims.Role) (claims.Identity, error) {
	if f.identity == nil {
		return claims.Identity{}, session.ErrNotAuthenticated
	}
	if !slices.Contains(roles, f.identity.Role) {
		return *f.identity, session.ErrWrongRole
	}
	return *f.identity, nil
}

func (f *fakeSession) IsAuthenticated() bool { return f.identity != nil }

type fakeDonations struct {
	list      []models.Donation
	listErr   error
	created   *models.NewDonation
	createErr error
}

func (f *fakeDonations) List(context.Context) ([]models.Donation, error) {
	return f.list, f.listErr
}

func (f *fakeDonations) ListAvailable(context.Context) ([]models.Donation, error) {
	return models.FilterAvailable(f.list), f.listErr
}

func (f *fakeDonations) Create(_ context.Context, in models.NewDonation) (*models.Donation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	f.created = &in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Donation{ID: 42, FoodType: in.FoodType}, nil
}

type fakeRequests struct {
	list      []models.FoodRequest
	created   *models.NewFoodRequest
	createErr error
	approved  []int64
	completed []int64
	actionErr error
}

func (f *fakeRequests) List(context.Context) ([]models.FoodRequest, error) {
	return f.list, nil
}

func (f *fakeRequests) Create(ctx context.Context, in models.NewFoodRequest) (*models.FoodRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.created = &in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.FoodRequest{ID: 77, Status: models.RequestPending}, nil
}

func (f *fakeRequests) Approve(_ context.Context, id int64) (string, error) {
	f.approved = append(f.approved, id)
	return "Request approved successfully", f.actionErr
}

func (f *fakeRequests) CompletePickup(_ context.Context, id int64) (string, error) {
	f.completed = append(f.completed, id)
	return "Pickup completed successfully", f.actionErr
}

type fakeStats struct {
	impact  models.ImpactStats
	heatmap []models.HeatmapPoint
}

func (f *fakeStats) Impact(context.Context) (models.ImpactStats, error) { return f.impact, nil }
func (f *fakeStats) Heatmap(context.Context) ([]models.HeatmapPoint, error) {
	return f.heatmap, nil
}

type testApp struct {
	*App
	sess      *fakeSession
	donations *fakeDonations
	requests  *fakeRequests
	stats     *fakeStats
	out       *bytes.Buffer
}

// newTestApp builds an App over fakes. role "" means logged out. Lines are
// fed to the interactive prompts.
func newTestApp(role claims.Role, lines ...string) *testApp {
	ta := &testApp{
		sess:      &fakeSession{},
		donations: &fakeDonations{},
		requests:  &fakeRequests{},
		stats:     &fakeStats{},
		out:       &bytes.Buffer{},
	}
	if role != "" {
		ta.sess.identity = &claims.Identity{UserID: 5, Username: "tester", Role: role}
	}
	ta.App = &App{
		session:   ta.sess,
		donations: ta.donations,
		requests:  ta.requests,
		stats:     ta.stats,
		log:       logging.Discard(),
		reader:    bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")),
		out:       ta.out,
	}
	return ta
}

func later(h int) string {
	return time.Now().Add(time.Duration(h) * time.Hour).Format(timeLayout)
}
