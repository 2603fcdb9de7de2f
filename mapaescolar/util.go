package mapaescolar

import "github.com/paulmach/orb"

// IsPlausibleLonLat reports whether a coordinate pair can be geographic
// degrees: longitude within ±180 and latitude within ±90.
func IsPlausibleLonLat(x, y float64) bool {
	if x > 180 || x < -180 {
		return false
	}

	if y > 90 || y < -90 {
		return false
	}

	return true
}

func GetWholeWorldBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{-180, -90},
		Max: orb.Point{180, 90},
	}
}

// IsInBound tests if a point is inside a container
func IsInBound(bound orb.Bound, lon, lat float64) bool {
	isInLonBound := lon < bound.Max.X() && lon > bound.Min.X()
	if !isInLonBound {
		return false
	}

	isInLatBound := lat < bound.Max.Y() && lat > bound.Min.Y()
	if !isInLatBound {
		return false
	}

	return true
}
