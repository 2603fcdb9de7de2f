package layerdal

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// The compact topology-encoded dataset format: named objects sharing
// delta-encoded arcs, optionally quantized through a scale/translate
// transform. Documents are converted to a feature collection before any
// other component sees them.

type topologyDocument struct {
	Type      string                       `json:"type"`
	Objects   map[string]*topologyGeometry `json:"objects"`
	Arcs      [][][]float64                `json:"arcs"`
	Transform *topologyTransform           `json:"transform"`
}

type topologyTransform struct {
	Scale     [2]float64 `json:"scale"`
	Translate [2]float64 `json:"translate"`
}

type topologyGeometry struct {
	Type        string              `json:"type"`
	ID          interface{}         `json:"id"`
	Properties  geojson.Properties  `json:"properties"`
	Coordinates json.RawMessage     `json:"coordinates"`
	Arcs        json.RawMessage     `json:"arcs"`
	Geometries  []*topologyGeometry `json:"geometries"`
}

// DecodeTopology extracts the named object from a topology-encoded
// document as a feature collection. An empty objectName is allowed when
// the document carries exactly one object.
func DecodeTopology(data []byte, objectName string) (*geojson.FeatureCollection, *ClassifiedError) {
	doc := new(topologyDocument)
	err := json.Unmarshal(data, doc)
	if err != nil {
		return nil, NewFormatError("undecodable topology document: %s", err)
	}

	if len(doc.Objects) == 0 {
		return nil, NewFormatError("topology document is missing its object table")
	}

	object, ok := doc.Objects[objectName]
	if !ok {
		if objectName != "" || len(doc.Objects) != 1 {
			return nil, NewFormatError("topology document has no object %q", objectName)
		}
		for _, only := range doc.Objects {
			object = only
		}
	}

	decoder := &topologyDecoder{
		transform: doc.Transform,
		arcs:      decodeArcs(doc.Arcs, doc.Transform),
	}

	fc := geojson.NewFeatureCollection()

	geometries := object.Geometries
	if object.Type != "GeometryCollection" {
		geometries = []*topologyGeometry{object}
	}

	for _, geometry := range geometries {
		converted, cerr := decoder.convert(geometry)
		if cerr != nil {
			return nil, cerr
		}

		feature := geojson.NewFeature(converted)
		feature.ID = geometry.ID
		if geometry.Properties != nil {
			feature.Properties = geometry.Properties
		}
		fc.Append(feature)
	}

	return fc, nil
}

// decodeArcs resolves delta encoding and quantization into absolute points.
func decodeArcs(rawArcs [][][]float64, transform *topologyTransform) [][]orb.Point {
	arcs := make([][]orb.Point, 0, len(rawArcs))
	for _, rawArc := range rawArcs {
		points := make([]orb.Point, 0, len(rawArc))

		var x, y float64
		for _, position := range rawArc {
			if len(position) < 2 {
				continue
			}

			if transform == nil {
				points = append(points, orb.Point{position[0], position[1]})
				continue
			}

			x += position[0]
			y += position[1]
			points = append(points, orb.Point{
				transform.Translate[0] + transform.Scale[0]*x,
				transform.Translate[1] + transform.Scale[1]*y,
			})
		}

		arcs = append(arcs, points)
	}

	return arcs
}

type topologyDecoder struct {
	transform *topologyTransform
	arcs      [][]orb.Point
}

func (d *topologyDecoder) convert(g *topologyGeometry) (orb.Geometry, *ClassifiedError) {
	switch g.Type {
	case "Point":
		var position []float64
		err := json.Unmarshal(g.Coordinates, &position)
		if err != nil || len(position) < 2 {
			return nil, NewFormatError("topology Point has invalid coordinates")
		}
		return d.position(position), nil

	case "MultiPoint":
		var positions [][]float64
		err := json.Unmarshal(g.Coordinates, &positions)
		if err != nil {
			return nil, NewFormatError("topology MultiPoint has invalid coordinates")
		}
		multiPoint := make(orb.MultiPoint, 0, len(positions))
		for _, position := range positions {
			if len(position) < 2 {
				continue
			}
			multiPoint = append(multiPoint, d.position(position))
		}
		return multiPoint, nil

	case "LineString":
		var arcIndexes []int
		err := json.Unmarshal(g.Arcs, &arcIndexes)
		if err != nil {
			return nil, NewFormatError("topology LineString has invalid arcs")
		}
		return orb.LineString(d.stitch(arcIndexes)), nil

	case "MultiLineString":
		var lines [][]int
		err := json.Unmarshal(g.Arcs, &lines)
		if err != nil {
			return nil, NewFormatError("topology MultiLineString has invalid arcs")
		}
		multiLine := make(orb.MultiLineString, 0, len(lines))
		for _, arcIndexes := range lines {
			multiLine = append(multiLine, orb.LineString(d.stitch(arcIndexes)))
		}
		return multiLine, nil

	case "Polygon":
		var rings [][]int
		err := json.Unmarshal(g.Arcs, &rings)
		if err != nil {
			return nil, NewFormatError("topology Polygon has invalid arcs")
		}
		return d.polygon(rings), nil

	case "MultiPolygon":
		var polygons [][][]int
		err := json.Unmarshal(g.Arcs, &polygons)
		if err != nil {
			return nil, NewFormatError("topology MultiPolygon has invalid arcs")
		}
		multiPolygon := make(orb.MultiPolygon, 0, len(polygons))
		for _, rings := range polygons {
			multiPolygon = append(multiPolygon, d.polygon(rings))
		}
		return multiPolygon, nil

	case "GeometryCollection":
		collection := make(orb.Collection, 0, len(g.Geometries))
		for _, child := range g.Geometries {
			converted, cerr := d.convert(child)
			if cerr != nil {
				return nil, cerr
			}
			collection = append(collection, converted)
		}
		return collection, nil

	default:
		return nil, NewFormatError("unhandled topology geometry type: %q", g.Type)
	}
}

// position converts one quantized point geometry coordinate. Point
// coordinates are transformed but, unlike arcs, never delta-encoded.
func (d *topologyDecoder) position(position []float64) orb.Point {
	if d.transform == nil {
		return orb.Point{position[0], position[1]}
	}
	return orb.Point{
		d.transform.Translate[0] + d.transform.Scale[0]*position[0],
		d.transform.Translate[1] + d.transform.Scale[1]*position[1],
	}
}

// stitch concatenates arcs into one line. A negative index ~i means arc i
// reversed; the shared junction point between consecutive arcs is dropped.
func (d *topologyDecoder) stitch(arcIndexes []int) []orb.Point {
	var line []orb.Point

	for _, index := range arcIndexes {
		reversed := false
		if index < 0 {
			index = ^index
			reversed = true
		}
		if index >= len(d.arcs) {
			continue
		}

		arc := d.arcs[index]
		points := make([]orb.Point, len(arc))
		copy(points, arc)

		if reversed {
			for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
				points[i], points[j] = points[j], points[i]
			}
		}

		if len(line) > 0 && len(points) > 0 {
			points = points[1:]
		}

		line = append(line, points...)
	}

	return line
}

func (d *topologyDecoder) polygon(rings [][]int) orb.Polygon {
	polygon := make(orb.Polygon, 0, len(rings))
	for _, arcIndexes := range rings {
		ring := orb.Ring(d.stitch(arcIndexes))
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}
		polygon = append(polygon, ring)
	}
	return polygon
}
