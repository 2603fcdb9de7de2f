package viewer

import (
	"testing"

	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySurface_polygonsAlwaysBeneathPoints(t *testing.T) {
	surface := NewInMemorySurface()

	pointLayer := &BuiltLayer{Key: mapaescolar.LayerKeySedes, Kind: mapaescolar.LayerKindPoint}
	polygonLayer := &BuiltLayer{Key: mapaescolar.LayerKeyVeredas, Kind: mapaescolar.LayerKindPolygon}

	// points first: the polygon layer must still end up beneath them
	surface.Attach(pointLayer, true)
	surface.Attach(polygonLayer, true)

	order := surface.DrawOrder()
	require.Len(t, order, 2)
	assert.Equal(t, mapaescolar.LayerKeyVeredas, order[0].Key)
	assert.Equal(t, mapaescolar.LayerKeySedes, order[1].Key)
}

func TestInMemorySurface_attachReplacesAndDetachRemoves(t *testing.T) {
	surface := NewInMemorySurface()

	layer := &BuiltLayer{Key: mapaescolar.LayerKeySedes, Kind: mapaescolar.LayerKindPoint}

	surface.Attach(layer, true)
	surface.Attach(layer, false)

	order := surface.DrawOrder()
	require.Len(t, order, 1, "re-attaching the same key must not duplicate it")
	assert.False(t, order[0].Visible)

	surface.Detach(mapaescolar.LayerKeySedes)
	assert.False(t, surface.Attached(mapaescolar.LayerKeySedes))
	assert.Empty(t, surface.DrawOrder())
}

func TestInMemorySurface_setVisible(t *testing.T) {
	surface := NewInMemorySurface()

	surface.Attach(&BuiltLayer{Key: mapaescolar.LayerKeyVeredas, Kind: mapaescolar.LayerKindPolygon}, false)
	assert.False(t, surface.IsVisible(mapaescolar.LayerKeyVeredas))

	surface.SetVisible(mapaescolar.LayerKeyVeredas, true)
	assert.True(t, surface.IsVisible(mapaescolar.LayerKeyVeredas))

	// unknown keys are ignored
	surface.SetVisible(mapaescolar.LayerKeySedes, true)
	assert.False(t, surface.IsVisible(mapaescolar.LayerKeySedes))
}
