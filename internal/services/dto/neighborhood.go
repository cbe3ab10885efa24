package dto

type CreateNeighborhoodRequest struct {
	City string  `json:"city" validate:"required,min=2,max=100"`
	Name string  `json:"name" validate:"required,min=2,max=100"`
	Lat  float64 `json:"lat" validate:"required,latitude"`
	Lng  float64 `json:"lng" validate:"required,longitude"`
}
