package repository

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"goal-planner/domain"
)

type catalogFile struct {
	Vehicles []domain.Vehicle `yaml:"vehicles"`
}

// LoadCatalogFile reads a YAML catalog of the form
//
//	vehicles:
//	  - model: Mercedes E-Class
//	    year: 2024
//	    price: 80000
//	    mileage: 15000
//	    is_new: false
//	    promotion: true
func LoadCatalogFile(path string) ([]domain.Vehicle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	for i, v := range f.Vehicles {
		if strings.TrimSpace(v.Model) == "" {
			return nil, fmt.Errorf("catalog entry %d: model is required", i)
		}
		if v.Price <= 0 {
			return nil, fmt.Errorf("catalog entry %d (%s): price must be positive", i, v.Model)
		}
		if v.Mileage < 0 {
			return nil, fmt.Errorf("catalog entry %d (%s): mileage must not be negative", i, v.Model)
		}
	}
	if len(f.Vehicles) == 0 {
		return nil, errors.New("catalog has no vehicles")
	}
	return f.Vehicles, nil
}
