package models

type ImpactStats struct {
	TotalMealsSaved  int64   `json:"total_meals_saved"`
	TotalFoodSavedKg float64 `json:"total_food_saved_kg"`
	TotalCO2SavedKg  float64 `json:"total_co2_saved_kg"`
	TotalDonations   int64   `json:"total_donations"`
}

// HeatmapPoint aggregates donations at one donor location.
type HeatmapPoint struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	Count           int64   `json:"count"`
	TotalQuantityKg float64 `json:"total_quantity_kg"`
}
