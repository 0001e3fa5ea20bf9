package repository

import (
	"context"

	"goal-planner/domain"
)

type VehicleRepository interface {
	Find(ctx context.Context, q domain.VehicleQuery) (domain.Vehicle, error)
}
