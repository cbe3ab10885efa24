package dto

type CreateActivityRequest struct {
	Title        string   `json:"title" validate:"required,min=2,max=200"`
	Description  string   `json:"description" validate:"omitempty,max=2000"`
	Category     string   `json:"category" validate:"required,is-activity-category"`
	AgeMin       int      `json:"age_min" validate:"required,min=3,max=18"`
	AgeMax       int      `json:"age_max" validate:"required,min=3,max=18"`
	PriceMonthly *float64 `json:"price_monthly" validate:"omitempty,gte=0"`
}

// SubmitActivityRequest is the parent-submitted variant. The entry has no
// owning school, so the submitter points at one indirectly through the
// free-text school name they know it by.
type SubmitActivityRequest struct {
	Title        string   `json:"title" validate:"required,min=2,max=200"`
	Description  string   `json:"description" validate:"omitempty,max=2000"`
	Category     string   `json:"category" validate:"required,is-activity-category"`
	AgeMin       int      `json:"age_min" validate:"required,min=3,max=18"`
	AgeMax       int      `json:"age_max" validate:"required,min=3,max=18"`
	PriceMonthly *float64 `json:"price_monthly" validate:"omitempty,gte=0"`
	SchoolID     *string  `json:"school_id" validate:"omitempty,uuid"`
}

type ActivityFilterRequest struct {
	City           string   `form:"city"`
	NeighborhoodID string   `form:"neighborhood_id" validate:"omitempty,uuid"`
	Category       string   `form:"category" validate:"omitempty,is-activity-category"`
	AgeMin         *int     `form:"age_min" validate:"omitempty,min=0,max=18"`
	AgeMax         *int     `form:"age_max" validate:"omitempty,min=0,max=18"`
	PriceMin       *float64 `form:"price_min" validate:"omitempty,gte=0"`
	PriceMax       *float64 `form:"price_max" validate:"omitempty,gte=0"`
	VerifiedOnly   bool     `form:"verified_only"`
}
