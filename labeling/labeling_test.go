package labeling

import (
	"testing"

	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word unchanged", "Esperanza", "Esperanza"},
		{"two words one per line", "La Esperanza", "La\nEsperanza"},
		{"three words one per line", "Alto del Oso", "Alto\ndel\nOso"},
		{"four words split 2/1/1", "La Vereda del Carmen", "La Vereda\ndel\nCarmen"},
		{"seven words split 3/2/2", "a b c d e f g", "a b c\nd e\nf g"},
		{"empty string unchanged", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapName(tt.in))
		})
	}
}

func TestBuildLabels(t *testing.T) {
	fc := geojson.NewFeatureCollection()

	named := geojson.NewFeature(orb.Polygon{
		{{-76, 3}, {-75, 3}, {-75, 4}, {-76, 4}, {-76, 3}},
	})
	named.Properties["nombre_ver"] = "La Esperanza Alta"
	fc.Append(named)

	// no resolvable name: skipped silently
	unnamed := geojson.NewFeature(orb.Polygon{
		{{-74, 3}, {-73, 3}, {-73, 4}, {-74, 3}},
	})
	fc.Append(unnamed)

	// unresolvable bounding box: skipped silently
	degenerate := geojson.NewFeature(orb.Polygon{})
	degenerate.Properties["nombre_ver"] = "Fantasma"
	fc.Append(degenerate)

	labels := BuildLabels(fc, []string{"nombre_ver", "nombre"})
	require.Len(t, labels, 1)

	assert.Equal(t, "La\nEsperanza\nAlta", labels[0].Text)
	assert.InDelta(t, -75.5, labels[0].AnchorLon, 1e-9)
	assert.InDelta(t, 3.5, labels[0].AnchorLat, 1e-9)
}

func TestZoomRule_At(t *testing.T) {
	rule := ZoomRule{
		MinZoomToShow: 11,
		MinFontSize:   9,
		MaxFontSize:   16,
		GrowthPerZoom: 2,
	}

	type args struct {
		zoom mapaescolar.ZoomLevel
	}
	tests := []struct {
		name        string
		args        args
		wantVisible bool
		wantSize    float64
	}{
		{"hidden below threshold", args{10.9}, false, 0},
		{"minimum size at threshold", args{11}, true, 9},
		{"linear growth", args{12.5}, true, 12},
		{"clamped at maximum", args{20}, true, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, size := rule.At(tt.args.zoom)
			assert.Equal(t, tt.wantVisible, visible)
			assert.InDelta(t, tt.wantSize, size, 1e-9)
		})
	}
}
