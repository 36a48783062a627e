package cli

import (
	"context"
	"fmt"
)

const recentItems = 5

// Dashboard shows the impact totals and the latest donations and requests.
func (a *App) Dashboard(ctx context.Context) error {
	id, _ := a.session.Identity()

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	a.printf("Welcome, %s!\n", id.Username)

	st, err := a.stats.Impact(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load impact stats")
	}
	a.println(impactTable(st))

	ds, err := a.donations.List(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load donations")
	}
	a.println("Recent donations")
	if len(ds) == 0 {
		a.println("  No donations yet")
	}
	for _, d := range ds[:min(len(ds), recentItems)] {
		a.println(fmt.Sprintf("  %s - %s kg - %s", d.FoodType, formatKg(d.QuantityKg), d.Status))
	}

	rs, err := a.requests.List(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load requests")
	}
	a.println("Recent requests")
	if len(rs) == 0 {
		a.println("  No requests yet")
	}
	for _, r := range rs[:min(len(rs), recentItems)] {
		a.println(fmt.Sprintf("  Request #%d - %s", r.ID, r.Status))
	}
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	st, err := a.stats.Impact(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load impact stats")
	}
	a.println(impactTable(st))
	return nil
}

func (a *App) Heatmap(ctx context.Context) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	pts, err := a.stats.Heatmap(ctx)
	if err != nil {
		return a.failed(ctx, err, "Failed to load heatmap")
	}
	if len(pts) == 0 {
		a.println("No donation data available for heatmap")
		return nil
	}
	a.println(heatmapTable(pts))
	return nil
}
