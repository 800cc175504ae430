package request

// UpdatePreferencesRequest replaces the calling seeker's preferences.
// Empty fields mean "no preference" and skip the matching factor.
type UpdatePreferencesRequest struct {
	BudgetMin          float64  `json:"budget_min" binding:"omitempty,gte=0"`
	BudgetMax          float64  `json:"budget_max" binding:"omitempty,gtefield=BudgetMin"`
	PreferredLocations []string `json:"preferred_locations"`
	RoomTypePreference []string `json:"room_type_preference" binding:"omitempty,dive,oneof=private shared studio 1bhk 2bhk 3bhk"`
	GenderPreference   string   `json:"gender_preference" binding:"omitempty,oneof=any male female"`
}
