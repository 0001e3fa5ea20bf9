package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"goal-planner/domain"
)

// DefaultVehicles seeds the catalog when no catalog file is configured.
var DefaultVehicles = []domain.Vehicle{
	{Model: "Mercedes S-Class", Year: 2025, Price: 120000, Mileage: 0, IsNew: true},
	{Model: "Mercedes S-Class", Year: 2025, Price: 104000, Mileage: 9000, IsNew: false},
	{Model: "Mercedes E-Class", Year: 2025, Price: 86000, Mileage: 0, IsNew: true},
	{Model: "Mercedes E-Class", Year: 2024, Price: 80000, Mileage: 15000, IsNew: false, Promotion: true},
	{Model: "Maybach S-Class", Year: 2023, Price: 200000, Mileage: 5000, IsNew: false},
	{Model: "Mercedes C200", Year: 2025, Price: 52000, Mileage: 0, IsNew: true, Promotion: true},
}

// CatalogMemory is an in-memory VehicleRepository whose listings can be
// swapped at runtime.
type CatalogMemory struct {
	mu       sync.RWMutex
	vehicles []domain.Vehicle
}

func NewCatalogMemory(vehicles []domain.Vehicle) *CatalogMemory {
	c := &CatalogMemory{}
	c.Replace(vehicles)
	return c
}

// Replace swaps the whole listing set.
func (c *CatalogMemory) Replace(vehicles []domain.Vehicle) {
	cp := make([]domain.Vehicle, len(vehicles))
	copy(cp, vehicles)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Price < cp[j].Price })

	c.mu.Lock()
	c.vehicles = cp
	c.mu.Unlock()
}

// Len returns the number of listings.
func (c *CatalogMemory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vehicles)
}

// Find returns the cheapest listing matching q. Model matching ignores case
// and surrounding whitespace.
func (c *CatalogMemory) Find(_ context.Context, q domain.VehicleQuery) (domain.Vehicle, error) {
	model := strings.TrimSpace(q.Model)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, v := range c.vehicles {
		if v.IsNew != q.IsNew || v.Year != q.Year || v.Mileage > q.MaxMileage {
			continue
		}
		if !strings.EqualFold(v.Model, model) {
			continue
		}
		return v, nil
	}

	condition := "used"
	if q.IsNew {
		condition = "new"
	}
	return domain.Vehicle{}, fmt.Errorf("%w: %s %s %d with at most %d km",
		domain.ErrVehicleNotFound, condition, model, q.Year, q.MaxMileage)
}
