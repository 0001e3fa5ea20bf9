package domain

// Vehicle is one catalog listing.
type Vehicle struct {
	Model     string  `json:"model" yaml:"model"`
	Year      int     `json:"year" yaml:"year"`
	Price     float64 `json:"price" yaml:"price"`
	Mileage   int     `json:"mileage" yaml:"mileage"`
	IsNew     bool    `json:"is_new" yaml:"is_new"`
	Promotion bool    `json:"promotion" yaml:"promotion"`
}

// VehicleQuery filters the catalog. Mileage is an upper bound.
type VehicleQuery struct {
	IsNew      bool
	Model      string
	Year       int
	MaxMileage int
}
