package models

type Neighborhood struct {
	BaseModel
	City string  `gorm:"not null;uniqueIndex:idx_neighborhood_city_name" json:"city"`
	Name string  `gorm:"not null;uniqueIndex:idx_neighborhood_city_name" json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`

	// Relations
	Schools []School `gorm:"foreignKey:NeighborhoodID" json:"-"`
}
