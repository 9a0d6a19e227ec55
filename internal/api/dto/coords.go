package dto

import (
	"Balgil/internal/pkg/util"
	"bytes"
	"math"

	"github.com/goccy/go-json"
)

// Coords [lon, lat]; accepted as a JSON array or a "lon,lat" string
type Coords [2]float64

func (c *Coords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		lon, lat, err := util.ParseCoords(s)
		if err != nil {
			return err
		}
		*c = Coords{lon, lat}
		return nil
	}

	var arr []float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 2 || !finite(arr[0]) || !finite(arr[1]) {
		return util.ErrCoordsInvalid
	}
	*c = Coords{arr[0], arr[1]}
	return nil
}

func (c Coords) Lon() float64 { return c[0] }
func (c Coords) Lat() float64 { return c[1] }

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
