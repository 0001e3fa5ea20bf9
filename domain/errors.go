package domain

import "errors"

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrInvalidGoal     = errors.New("invalid goal")
	ErrUnreachableGoal = errors.New("goal cannot be reached")
)
