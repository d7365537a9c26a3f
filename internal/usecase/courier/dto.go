package courier

import (
	"paritos.app/delivery/internal/entity"
)

type CourierToCreateDTO struct {
	UserID      uint64  `validate:"required"`
	DisplayName string  `validate:"required"`
	Vehicle     string  `validate:"required,courier_vehicle"`
	Rating      float64 `validate:"omitempty,min=0,max=5"`
}

type ApplicationToSubmitDTO struct {
	UserID   uint64 `validate:"required"`
	FullName string `validate:"required"`
	Phone    string `validate:"required"`
	Vehicle  string `validate:"required,courier_vehicle"`
}

// CourierAssignmentsDTO groups a courier's orders currently out for
// delivery, for the admin delivery monitor.
type CourierAssignmentsDTO struct {
	CourierID uint64
	Orders    []entity.Order
}
