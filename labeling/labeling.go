package labeling

import (
	"math"
	"strings"

	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/paulmach/orb/geojson"
)

// ZoomRule decides label visibility and font size for a zoom level. Labels
// themselves are immutable; the rule is re-evaluated on every zoom change.
type ZoomRule struct {
	MinZoomToShow mapaescolar.ZoomLevel `json:"minZoomToShow"`
	MinFontSize   float64               `json:"minFontSize"`
	MaxFontSize   float64               `json:"maxFontSize"`
	GrowthPerZoom float64               `json:"growthPerZoom"`
}

// At is pure: hidden below the zoom threshold, then the font grows linearly
// with zoom, clamped to [MinFontSize, MaxFontSize].
func (r ZoomRule) At(zoom mapaescolar.ZoomLevel) (visible bool, fontSize float64) {
	if zoom < r.MinZoomToShow {
		return false, 0
	}

	fontSize = r.MinFontSize + float64(zoom-r.MinZoomToShow)*r.GrowthPerZoom
	if fontSize < r.MinFontSize {
		fontSize = r.MinFontSize
	}
	if fontSize > r.MaxFontSize {
		fontSize = r.MaxFontSize
	}

	return true, fontSize
}

func DefaultZoomRule() ZoomRule {
	return ZoomRule{
		MinZoomToShow: 11,
		MinFontSize:   9,
		MaxFontSize:   16,
		GrowthPerZoom: 1.75,
	}
}

// BuildLabels derives one centroid label per polygon feature. Features with
// no resolvable name or an unresolvable bounding box are skipped silently;
// a dataset with messy attributes must never fail the layer build.
func BuildLabels(fc *geojson.FeatureCollection, nameCandidates []string) []*mapaescolar.LabelEntry {
	var labels []*mapaescolar.LabelEntry

	for _, feature := range fc.Features {
		name, ok := mapaescolar.ResolveAttribute(feature.Properties, nameCandidates)
		if !ok {
			continue
		}

		if feature.Geometry == nil {
			continue
		}
		bound := feature.Geometry.Bound()
		if bound.IsEmpty() {
			continue
		}

		center := bound.Center()
		labels = append(labels, &mapaescolar.LabelEntry{
			Text:      WrapName(name),
			AnchorLon: center.X(),
			AnchorLat: center.Y(),
		})
	}

	return labels
}

// WrapName word-wraps a display name onto at most 3 lines. One word passes
// through unchanged; two or three words take one line each; longer names
// split into three contiguous groups sized ceil(n/3), ceil(2n/3)-ceil(n/3)
// and the remainder.
func WrapName(name string) string {
	words := strings.Fields(name)

	switch {
	case len(words) <= 1:
		return name
	case len(words) <= 3:
		return strings.Join(words, "\n")
	}

	n := len(words)
	first := int(math.Ceil(float64(n) / 3))
	second := int(math.Ceil(float64(2*n)/3)) - first

	lines := []string{
		strings.Join(words[:first], " "),
		strings.Join(words[first:first+second], " "),
		strings.Join(words[first+second:], " "),
	}

	return strings.Join(lines, "\n")
}
