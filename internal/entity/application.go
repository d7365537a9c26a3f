package entity

import "time"

type CourierApplication struct {
	ID       uint64
	UserID   uint64
	FullName string
	Phone    string
	Vehicle  VehicleType
	Status   ApplicationStatus
	Date     time.Time
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)
