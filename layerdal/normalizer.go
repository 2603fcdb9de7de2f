package layerdal

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	DefaultSampleCap        = 2000
	DefaultBadnessThreshold = 0.2
)

// GeometryNormalizer decides whether a dataset's coordinates are geographic
// (longitude/latitude degrees) and, when they are not, reprojects a clone
// of the dataset from the documented UTM fallback into degrees. The input
// document is never mutated. The sampling cap and badness threshold are
// heuristics carried over from the dataset publisher; they are fields, not
// constants, so deployments can tune them.
type GeometryNormalizer struct {
	logger           *logpkg.Logger
	SampleCap        int
	BadnessThreshold float64
	transform        ProjectedToGeographicFunc
}

func NewGeometryNormalizer(logger *logpkg.Logger) *GeometryNormalizer {
	return &GeometryNormalizer{
		logger:           logger,
		SampleCap:        DefaultSampleCap,
		BadnessThreshold: DefaultBadnessThreshold,
		transform:        TransformerUTM18N(),
	}
}

// NewGeometryNormalizerWithTransform allows injecting a transform, or nil
// to model an absent reprojection capability.
func NewGeometryNormalizerWithTransform(logger *logpkg.Logger, transform ProjectedToGeographicFunc) *GeometryNormalizer {
	n := NewGeometryNormalizer(logger)
	n.transform = transform
	return n
}

// Normalize returns fc itself when its coordinates look geographic, a
// reprojected clone when they don't and a transform is available, and fc
// itself with a warning when reprojection is needed but unavailable.
// It never fails the load.
func (n *GeometryNormalizer) Normalize(fc *geojson.FeatureCollection) (*geojson.FeatureCollection, errorsx.Error) {
	sampled, implausible := n.sample(fc)
	if sampled == 0 {
		// empty sample defaults to geographic
		return fc, nil
	}

	badness := float64(implausible) / float64(sampled)
	if badness < n.BadnessThreshold {
		return fc, nil
	}

	if n.transform == nil {
		n.logger.Warn("dataset looks projected (%d/%d implausible coordinate pairs) but no reprojection capability is available; leaving coordinates unmodified", implausible, sampled)
		return fc, nil
	}

	n.logger.Info("dataset looks projected (%d/%d implausible coordinate pairs), reprojecting from the UTM fallback", implausible, sampled)

	reprojected := geojson.NewFeatureCollection()
	for _, feature := range fc.Features {
		var geometry orb.Geometry
		if feature.Geometry != nil {
			geometry = transformGeometry(orb.Clone(feature.Geometry), n.transform)
		}
		cloned := geojson.NewFeature(geometry)
		cloned.ID = feature.ID
		cloned.Properties = feature.Properties.Clone()
		reprojected.Append(cloned)
	}

	return reprojected, nil
}

// sample walks up to SampleCap coordinate pairs across all features and
// counts how many cannot be geographic degrees.
func (n *GeometryNormalizer) sample(fc *geojson.FeatureCollection) (sampled, implausible int) {
	for _, feature := range fc.Features {
		if sampled >= n.SampleCap {
			break
		}
		if feature.Geometry == nil {
			continue
		}

		walkPoints(feature.Geometry, func(p orb.Point) bool {
			if sampled >= n.SampleCap {
				return false
			}
			sampled++
			if !mapaescolar.IsPlausibleLonLat(p.X(), p.Y()) {
				implausible++
			}
			return true
		})
	}

	return sampled, implausible
}

// walkPoints visits every vertex of a geometry depth-first. The visitor
// returns false to stop early.
func walkPoints(geometry orb.Geometry, visit func(orb.Point) bool) bool {
	switch g := geometry.(type) {
	case orb.Point:
		return visit(g)
	case orb.MultiPoint:
		for _, p := range g {
			if !visit(p) {
				return false
			}
		}
	case orb.LineString:
		for _, p := range g {
			if !visit(p) {
				return false
			}
		}
	case orb.MultiLineString:
		for _, ls := range g {
			if !walkPoints(ls, visit) {
				return false
			}
		}
	case orb.Ring:
		for _, p := range g {
			if !visit(p) {
				return false
			}
		}
	case orb.Polygon:
		for _, ring := range g {
			if !walkPoints(ring, visit) {
				return false
			}
		}
	case orb.MultiPolygon:
		for _, polygon := range g {
			if !walkPoints(polygon, visit) {
				return false
			}
		}
	case orb.Collection:
		for _, child := range g {
			if !walkPoints(child, visit) {
				return false
			}
		}
	case orb.Bound:
		return walkPoints(g.ToPolygon(), visit)
	}

	return true
}

// transformGeometry rewrites every vertex in place. Callers pass a clone.
func transformGeometry(geometry orb.Geometry, transform ProjectedToGeographicFunc) orb.Geometry {
	transformPoint := func(p orb.Point) orb.Point {
		lon, lat := transform(p.X(), p.Y())
		return orb.Point{lon, lat}
	}

	switch g := geometry.(type) {
	case orb.Point:
		return transformPoint(g)
	case orb.MultiPoint:
		for i, p := range g {
			g[i] = transformPoint(p)
		}
		return g
	case orb.LineString:
		for i, p := range g {
			g[i] = transformPoint(p)
		}
		return g
	case orb.MultiLineString:
		for i, ls := range g {
			g[i] = transformGeometry(ls, transform).(orb.LineString)
		}
		return g
	case orb.Ring:
		for i, p := range g {
			g[i] = transformPoint(p)
		}
		return g
	case orb.Polygon:
		for i, ring := range g {
			g[i] = transformGeometry(ring, transform).(orb.Ring)
		}
		return g
	case orb.MultiPolygon:
		for i, polygon := range g {
			g[i] = transformGeometry(polygon, transform).(orb.Polygon)
		}
		return g
	case orb.Collection:
		for i, child := range g {
			g[i] = transformGeometry(child, transform)
		}
		return g
	default:
		return geometry
	}
}
