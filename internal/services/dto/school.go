package dto

type CreateSchoolRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=200"`
	Description    string   `json:"description" validate:"omitempty,max=2000"`
	Phone          string   `json:"phone" validate:"omitempty,max=30"`
	Email          string   `json:"email" validate:"omitempty,email"`
	City           string   `json:"city" validate:"required,min=2,max=100"`
	Address        string   `json:"address" validate:"omitempty,max=300"`
	NeighborhoodID *string  `json:"neighborhood_id" validate:"omitempty,uuid"`
	Lat            *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng            *float64 `json:"lng" validate:"omitempty,longitude"`
}

type UpdateSchoolRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description    *string  `json:"description" validate:"omitempty,max=2000"`
	Phone          *string  `json:"phone" validate:"omitempty,max=30"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Address        *string  `json:"address" validate:"omitempty,max=300"`
	NeighborhoodID *string  `json:"neighborhood_id" validate:"omitempty,uuid"`
	Lat            *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng            *float64 `json:"lng" validate:"omitempty,longitude"`
}

type SchoolFilterRequest struct {
	City           string `form:"city"`
	NeighborhoodID string `form:"neighborhood_id" validate:"omitempty,uuid"`
	VerifiedOnly   bool   `form:"verified_only"`
}
