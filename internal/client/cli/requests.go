package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/models"
)

func (a *App) Requests(ctx context.Context) error {
	id, _ := a.session.Identity()

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	rs, err := a.requests.List(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load requests")
	}
	if len(rs) == 0 {
		a.println("No requests yet")
		return nil
	}
	a.println(requestsTable(rs, id.Role))
	return nil
}

// Request lets an NGO claim one of the available donations.
func (a *App) Request(ctx context.Context) error {
	if _, err := a.requireRole("request donations", claims.RoleNGO); err != nil {
		return err
	}

	available, err := a.availableDonations(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load donations")
	}
	if len(available) == 0 {
		a.println("No donations available")
		return nil
	}
	a.println(donationsTable(available))

	in, err := a.promptRequest(available)
	if err != nil {
		a.println(err)
		return err
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	r, err := a.requests.Create(ctx, in)
	if err != nil {
		if isValidation(err) {
			a.println(err)
			return err
		}
		return a.failed(ctx, err, "Failed to create request")
	}
	a.printf("Request #%d created.\n", r.ID)
	return nil
}

func (a *App) availableDonations(ctx context.Context) ([]models.Donation, error) {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()
	return a.donations.ListAvailable(ctx)
}

func (a *App) promptRequest(available []models.Donation) (models.NewFoodRequest, error) {
	var in models.NewFoodRequest

	id, err := GetInt(a.reader, "Donation ID", a.out)
	if err != nil {
		return in, err
	}
	if !containsDonation(available, id) {
		return in, fmt.Errorf("donation #%d is not available", id)
	}
	in.DonationID = id

	if in.PickupTime, err = GetTime(a.reader, "Pickup time", a.out, false); err != nil {
		return in, fmt.Errorf("pickup time: %w", err)
	}
	return in, nil
}

func containsDonation(ds []models.Donation, id int64) bool {
	for _, d := range ds {
		if d.ID == id {
			return true
		}
	}
	return false
}

// Approve accepts a pending request. Donors only.
func (a *App) Approve(ctx context.Context, args []string) error {
	if _, err := a.requireRole("approve requests", claims.RoleDonor); err != nil {
		return err
	}
	return a.requestAction(ctx, "approve", args, a.requests.Approve, "Failed to approve request")
}

// Complete marks an approved pickup as done. NGOs only.
func (a *App) Complete(ctx context.Context, args []string) error {
	if _, err := a.requireRole("complete pickups", claims.RoleNGO); err != nil {
		return err
	}
	return a.requestAction(ctx, "complete", args, a.requests.CompletePickup, "Failed to complete pickup")
}

func (a *App) requestAction(ctx context.Context, name string, args []string,
	do func(context.Context, int64) (string, error), fallback string) error {
	if len(args) != 1 {
		a.printf("Usage: %s <id>\n", name)
		return fmt.Errorf("usage: %s <id>", name)
	}
	id, err := parseID(args[0])
	if err != nil {
		a.println(err)
		return err
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	msg, err := do(ctx, id)
	if err != nil {
		return a.failed(ctx, err, fallback)
	}
	if msg == "" {
		msg = "Done."
	}
	a.println(msg)
	return nil
}
