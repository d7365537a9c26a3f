package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointRoundtrip(t *testing.T) {

	p := NewPoint(19.432608, -99.133209)

	value, err := p.Value()
	require.NoError(t, err)

	var scanned Point
	require.NoError(t, scanned.Scan(value))

	assert.Equal(t, p, scanned)
}

func TestPointScanBytes(t *testing.T) {

	var p Point
	require.NoError(t, p.Scan([]byte("10.5,-20.25")))

	assert.Equal(t, 10.5, p.Lat)
	assert.Equal(t, -20.25, p.Lng)
}

func TestPointScanNil(t *testing.T) {

	p := NewPoint(1, 2)
	require.NoError(t, p.Scan(nil))

	assert.Equal(t, Point{}, p)
}

func TestPointScanMalformed(t *testing.T) {

	var p Point
	assert.Error(t, p.Scan("not-a-point"))
	assert.Error(t, p.Scan("1;2"))
	assert.Error(t, p.Scan(42))
}
