package webservices

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/layerdal"
	"github.com/mapaescolar/mapaescolar-app/styling"
	"github.com/mapaescolar/mapaescolar-app/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sedesFixture = `{"type":"FeatureCollection","features":[
	{"type":"Feature","geometry":{"type":"Point","coordinates":[-74.08,4.65]},
	 "properties":{"nombre_sede":"Sede Central","codigo_dane":"111001000001","matricula":250,"internet":"si","energia":"si"}},
	{"type":"Feature","geometry":{"type":"Point","coordinates":[-74.1,4.6]},
	 "properties":{"nombre_sede":"Sede Rural","matricula":40,"internet":"no"}}
]}`

func newTestServices(t *testing.T) (*LayerService, *SurfaceService, *viewer.ToggleController) {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), "sedes.geojson")
	require.NoError(t, os.WriteFile(filePath, []byte(sedesFixture), 0644))

	logger := logpkg.NewLogger(os.Stderr, logpkg.LogLevelError)
	sources := &layerdal.SourcesConfig{
		UseLocalData: true,
		LocalPaths:   map[string]string{"sedes": filePath},
	}
	loader := layerdal.NewDatasetLoader(logger, sources, layerdal.NewDataFetcher(logger, nil), layerdal.NewGeometryNormalizer(logger))

	surface := viewer.NewInMemorySurface()
	controller := viewer.NewToggleController(
		logger,
		viewer.NewPipelineBuilder(logger, loader),
		surface,
		viewer.NewMemoryStatusSink(),
		viewer.NewControlPanel(),
		styling.BuiltinLayerSpecs(),
	)

	return NewLayerService(logger, controller, false), NewSurfaceService(logger, surface), controller
}

func TestLayerService_toggleAndGet(t *testing.T) {
	layerService, surfaceService, _ := newTestServices(t)

	// a layer that was never toggled is not available yet
	recorder := httptest.NewRecorder()
	layerService.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sedes", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	// toggle it on: the build pipeline runs against the local fixture
	recorder = httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/sedes/toggle", bytes.NewBufferString(`{"on": true}`))
	layerService.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var toggleResponse toggleResponseType
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &toggleResponse))
	assert.Equal(t, "built-visible", toggleResponse.States["sedes"])
	assert.Empty(t, toggleResponse.Message)

	// the built layer payload is now served
	recorder = httptest.NewRecorder()
	layerService.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/sedes", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var layer viewer.BuiltLayer
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &layer))
	require.Len(t, layer.Features, 2)
	assert.Equal(t, "Sede Central", layer.Features[0].Card.Title)
	assert.Greater(t, layer.Features[0].Symbol.Radius, layer.Features[1].Symbol.Radius,
		"a larger enrolment must never render smaller")

	// and the surface reports it attached and visible
	recorder = httptest.NewRecorder()
	surfaceService.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var surfaceResponse getSurfaceResponseType
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &surfaceResponse))
	require.Len(t, surfaceResponse.Layers, 1)
	assert.Equal(t, "sedes", string(surfaceResponse.Layers[0].Key))
	assert.True(t, surfaceResponse.Layers[0].Visible)
}

func TestLayerService_toggleFailureCarriesStatusMessage(t *testing.T) {
	layerService, _, _ := newTestServices(t)

	// veredas has no source entry in this test config
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/veredas/toggle", bytes.NewBufferString(`{"on": true}`))
	layerService.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var toggleResponse toggleResponseType
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &toggleResponse))
	assert.Equal(t, "unbuilt", toggleResponse.States["veredas"])
	assert.NotEmpty(t, toggleResponse.Message)
}

func TestInfoService_listsAllLayers(t *testing.T) {
	_, _, controller := newTestServices(t)

	logger := logpkg.NewLogger(os.Stderr, logpkg.LogLevelError)
	infoService := NewInfoService(logger, controller)

	recorder := httptest.NewRecorder()
	infoService.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var response getInfoResponseType
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Layers, 6)

	states := map[string]string{}
	for _, layer := range response.Layers {
		states[string(layer.Key)] = layer.State
	}
	assert.Equal(t, "unbuilt", states["veredas"])
	assert.Equal(t, "unbuilt", states["sedes"])
}
