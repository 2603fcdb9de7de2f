package layerdal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcesConfig_Resolve(t *testing.T) {
	config := &SourcesConfig{
		UseLocalData: false,
		LocalPaths: map[string]string{
			"sedes": "/srv/data/sedes.geojson",
		},
		ReleaseURLs: map[string]string{
			"sedes": "https://releases.example.org/v3/sedes.geojson",
		},
		DefaultBase: "https://datos.example.org/latest/",
		Filenames: map[string]string{
			"sedes":   "sedes.geojson",
			"veredas": "veredas.topo.json",
		},
	}

	t.Run("release URL wins while local data is disabled", func(t *testing.T) {
		got, ok := config.Resolve("sedes")
		assert.True(t, ok)
		assert.Equal(t, "https://releases.example.org/v3/sedes.geojson", got)
	})

	t.Run("local override wins when enabled", func(t *testing.T) {
		local := *config
		local.UseLocalData = true

		got, ok := local.Resolve("sedes")
		assert.True(t, ok)
		assert.Equal(t, "/srv/data/sedes.geojson", got)
	})

	t.Run("default base template as last resort", func(t *testing.T) {
		got, ok := config.Resolve("veredas")
		assert.True(t, ok)
		assert.Equal(t, "https://datos.example.org/latest/veredas.topo.json", got)
	})

	t.Run("absent when nothing resolves", func(t *testing.T) {
		_, ok := config.Resolve("desconocido")
		assert.False(t, ok)
	})

	t.Run("empty table entries do not resolve", func(t *testing.T) {
		sparse := &SourcesConfig{
			UseLocalData: true,
			LocalPaths:   map[string]string{"sedes": ""},
			ReleaseURLs:  map[string]string{"sedes": ""},
		}
		_, ok := sparse.Resolve("sedes")
		assert.False(t, ok)
	})
}
