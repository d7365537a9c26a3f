package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Point is a "lat,lng" column for delivery coordinates.
type Point struct {
	Lat float64
	Lng float64
}

func NewPoint(lat, lng float64) Point {
	return Point{Lat: lat, Lng: lng}
}

func (p *Point) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return p.UnmarshalText(string(v))
	case string:
		return p.UnmarshalText(v)
	case nil:
		*p = Point{}
	default:
		return fmt.Errorf("cannot sql.Scan() Point from: %#v", v)
	}

	return nil
}

func (p *Point) UnmarshalText(value string) error {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return fmt.Errorf("malformed point value: %q", value)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return err
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return err
	}

	*p = Point{Lat: lat, Lng: lng}

	return nil
}

func (p Point) Value() (driver.Value, error) {
	return driver.Value(fmt.Sprintf("%s,%s",
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
		strconv.FormatFloat(p.Lng, 'f', -1, 64),
	)), nil
}

func (Point) GormDataType() string {
	return "VARCHAR(64)"
}
