package order

import (
	"github.com/shopspring/decimal"
)

type CheckoutDTO struct {
	Items            []CheckoutItemDTO `validate:"omitempty,dive"`
	CustomerID       uint64
	CustomerName     string
	CustomerAddress  string
	CustomerLocation *GeoPointDTO
	RestaurantID     uint64 `validate:"required"`
}

type CheckoutItemDTO struct {
	MenuItemID uint64 `validate:"required"`
	Name       string `validate:"required"`
	Quantity   uint32 `validate:"required,min=1"`
	UnitPrice  decimal.Decimal
}

type GeoPointDTO struct {
	Lat float64 `validate:"geo_lat"`
	Lng float64 `validate:"geo_lng"`
}
