package layerdal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(sources *SourcesConfig) *DatasetLoader {
	logger := newTestLogger()
	return NewDatasetLoader(logger, sources, NewDataFetcher(logger, nil), NewGeometryNormalizer(logger))
}

func TestDatasetLoader_configurationErrorWhenNothingResolves(t *testing.T) {
	loader := newTestLoader(&SourcesConfig{})

	_, err := loader.LoadDataset(context.Background(), &mapaescolar.LayerSpec{
		Key:       mapaescolar.LayerKeySedes,
		SourceKey: "sedes",
	})
	require.NotNil(t, err)
	assert.Equal(t, ErrorClassConfiguration, ClassifyError(err))
}

func TestDatasetLoader_topologyEncodedLocalFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "veredas.topo.json")
	require.NoError(t, os.WriteFile(filePath, []byte(veredasTopologyFixture), 0644))

	loader := newTestLoader(&SourcesConfig{
		UseLocalData: true,
		LocalPaths:   map[string]string{"veredas": filePath},
	})

	fc, err := loader.LoadDataset(context.Background(), &mapaescolar.LayerSpec{
		Key:             mapaescolar.LayerKeyVeredas,
		SourceKey:       "veredas",
		TopologyEncoded: true,
		TopologyObject:  "veredas",
	})
	require.Nil(t, err)
	assert.Len(t, fc.Features, 2)
}

func TestDatasetLoader_geojsonLocalFile(t *testing.T) {
	doc := `{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[-74.08,4.65]},"properties":{"nombre":"Sede Central"}}
	]}`
	filePath := filepath.Join(t.TempDir(), "sedes.geojson")
	require.NoError(t, os.WriteFile(filePath, []byte(doc), 0644))

	loader := newTestLoader(&SourcesConfig{
		UseLocalData: true,
		LocalPaths:   map[string]string{"sedes": filePath},
	})

	fc, err := loader.LoadDataset(context.Background(), &mapaescolar.LayerSpec{
		Key:       mapaescolar.LayerKeySedes,
		SourceKey: "sedes",
	})
	require.Nil(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Sede Central", fc.Features[0].Properties["nombre"])
}

func TestDatasetLoader_undecodableDocumentIsFormatError(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "sedes.geojson")
	require.NoError(t, os.WriteFile(filePath, []byte(`<html>not json</html>`), 0644))

	loader := newTestLoader(&SourcesConfig{
		UseLocalData: true,
		LocalPaths:   map[string]string{"sedes": filePath},
	})

	_, err := loader.LoadDataset(context.Background(), &mapaescolar.LayerSpec{
		Key:       mapaescolar.LayerKeySedes,
		SourceKey: "sedes",
	})
	require.NotNil(t, err)
	assert.Equal(t, ErrorClassFormat, ClassifyError(err))
}
