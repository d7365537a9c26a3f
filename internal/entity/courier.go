package entity

type Courier struct {
	ID          uint64
	UserID      uint64
	DisplayName string
	Status      CourierStatus
	Rating      float64
	Vehicle     VehicleType
}

type CourierStatus string

const (
	CourierAvailable  CourierStatus = "available"
	CourierDelivering CourierStatus = "delivering"
	CourierOffline    CourierStatus = "offline"
)

func ValidCourierStatuses() []string {
	return []string{
		string(CourierAvailable),
		string(CourierDelivering),
		string(CourierOffline),
	}
}

func IsValidCourierStatus(s string) bool {
	for _, validStatus := range ValidCourierStatuses() {
		if validStatus == s {
			return true
		}
	}
	return false
}

type VehicleType string

const (
	BIKE VehicleType = "BIKE"
	MOTO VehicleType = "MOTO"
	AUTO VehicleType = "AUTO"
)

func ValidVehicleTypes() []string {
	return []string{
		string(BIKE),
		string(MOTO),
		string(AUTO),
	}
}

func IsValidVehicleType(t string) bool {
	for _, validType := range ValidVehicleTypes() {
		if validType == t {
			return true
		}
	}
	return false
}
