package cli

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/foodlink/internal/client/claims"
	"github.com/dmitrijs2005/foodlink/internal/client/models"
	"github.com/jedib0t/go-pretty/v6/table"
)

func donationsTable(ds []models.Donation) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"ID", "Food", "Description", "Qty (kg)", "Status", "Donor", "Distance", "Risk", "Expires"})
	for _, d := range ds {
		tw.AppendRow(table.Row{
			d.ID,
			d.FoodType,
			d.Description,
			formatKg(d.QuantityKg),
			d.Status,
			d.Donor.Label(),
			formatDistance(d.DistanceKm),
			formatRisk(d.RiskAssessment),
			formatTime(d.ExpiryTime),
		})
	}
	return tw.Render()
}

func requestsTable(rs []models.FoodRequest, role claims.Role) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"ID", "Status", "Donation", "NGO", "Pickup", "Action"})
	for _, r := range rs {
		tw.AppendRow(table.Row{
			r.ID,
			r.Status,
			donationSummary(r.Donation),
			r.NGO.Label(),
			formatTime(r.PickupTime),
			nextAction(r, role),
		})
	}
	return tw.Render()
}

func impactTable(st models.ImpactStats) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Meals saved", "Food saved (kg)", "CO2 saved (kg)", "Donations"})
	tw.AppendRow(table.Row{st.TotalMealsSaved, formatKg(st.TotalFoodSavedKg), formatKg(st.TotalCO2SavedKg), st.TotalDonations})
	return tw.Render()
}

func heatmapTable(pts []models.HeatmapPoint) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"#", "Latitude", "Longitude", "Donations", "Total (kg)"})
	for i, p := range pts {
		tw.AppendRow(table.Row{
			fmt.Sprintf("Location %d", i+1),
			strconv.FormatFloat(p.Latitude, 'f', 6, 64),
			strconv.FormatFloat(p.Longitude, 'f', 6, 64),
			p.Count,
			formatKg(p.TotalQuantityKg),
		})
	}
	return tw.Render()
}

// nextAction is the command the current user can run on r, if any.
func nextAction(r models.FoodRequest, role claims.Role) string {
	switch {
	case role == claims.RoleDonor && r.Status == models.RequestPending:
		return fmt.Sprintf("approve %d", r.ID)
	case role == claims.RoleNGO && r.Status == models.RequestApproved:
		return fmt.Sprintf("complete %d", r.ID)
	}
	return ""
}

func donationSummary(ref models.DonationRef) string {
	if ref.Donation == nil {
		if ref.ID == 0 {
			return ""
		}
		return fmt.Sprintf("#%d", ref.ID)
	}
	d := ref.Donation
	return fmt.Sprintf("#%d %s %s kg", d.ID, d.FoodType, formatKg(d.QuantityKg))
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDistance(km *float64) string {
	if km == nil {
		return ""
	}
	return formatKg(*km) + " km"
}

func formatRisk(r *models.RiskAssessment) string {
	if r == nil {
		return ""
	}
	return string(r.RiskLevel)
}
