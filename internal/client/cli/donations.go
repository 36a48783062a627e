package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/models"
	"github.com/dmitrijs2005/foodlink/internal/common"
)

func (a *App) Donations(ctx context.Context) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	ds, err := a.donations.List(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load donations")
	}
	if len(ds) == 0 {
		a.println("No donations available")
		return nil
	}
	a.println(donationsTable(ds))
	return nil
}

// Donate prompts for a new donation. Donors only.
func (a *App) Donate(ctx context.Context) error {
	if _, err := a.requireRole("create donations", claims.RoleDonor); err != nil {
		return err
	}

	in, err := a.promptDonation()
	if err != nil {
		a.println(err)
		return err
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	d, err := a.donations.Create(ctx, in)
	if err != nil {
		if isValidation(err) {
			a.println(err)
			return err
		}
		return a.failed(ctx, err, "Failed to create donation")
	}
	a.printf("Donation #%d created.\n", d.ID)
	return nil
}

func (a *App) promptDonation() (models.NewDonation, error) {
	var in models.NewDonation

	s, err := getSimpleText(a.reader, "Food type (cooked/packaged/raw)", a.out)
	if err != nil {
		return in, err
	}
	if in.FoodType, err = models.ParseFoodType(s); err != nil {
		return in, err
	}
	if in.Description, err = GetRequiredText(a.reader, "Description", a.out); err != nil {
		return in, fmt.Errorf("description: %w", err)
	}
	if in.QuantityKg, err = GetFloat(a.reader, "Quantity (kg)", a.out); err != nil {
		return in, err
	}
	if in.FoodType == models.FoodCooked {
		cooked, err := GetTime(a.reader, "Cooked time, empty to skip", a.out, true)
		if err != nil {
			return in, err
		}
		if !cooked.IsZero() {
			in.CookedTime = &cooked
		}
	}
	if in.ExpiryTime, err = GetTime(a.reader, "Expiry time", a.out, false); err != nil {
		return in, fmt.Errorf("expiry time: %w", err)
	}
	return in, nil
}

func isValidation(err error) bool {
	return errors.Is(err, common.ErrInvalidInput)
}
