package layerdal

import (
	"github.com/wroge/wgs84"
)

type spheroid struct {
	a, fi float64
}

func (s spheroid) A() float64 {
	return s.a
}
func (s spheroid) Fi() float64 {
	return s.fi
}

// ProjectedToGeographicFunc transforms one projected coordinate pair into
// geographic degrees (longitude, latitude).
type ProjectedToGeographicFunc func(x, y float64) (lon, lat float64)

// EPSG:32618 (UTM zone 18N, WGS 84)
// +proj=utm +zone=18 +datum=WGS84 +units=m +no_defs
//
// This is the single documented fallback for source documents published in
// projected coordinates instead of geographic degrees.
func TransformerUTM18N() ProjectedToGeographicFunc {
	// SPHEROID["WGS 84",6378137,298.257223563]
	utmDatum := wgs84.Datum{
		Spheroid: spheroid{
			a: 6378137, fi: 298.257223563,
		},
		Area: wgs84.AreaFunc(func(lon, lat float64) bool {
			if lon < -78 || lon > -72 || lat < -4 || lat > 13 {
				return false
			}
			return true
		}),
	}
	proj := utmDatum.TransverseMercator(-75, 0, 0.9996, 500000, 0)
	epsg := wgs84.EPSG()
	epsg.Add(32618, proj)
	transform := wgs84.Transform(epsg.Code(32618), wgs84.WGS84().LonLat())

	return func(x, y float64) (float64, float64) {
		lon, lat, _ := transform(x, y, 0)
		return lon, lat
	}
}
