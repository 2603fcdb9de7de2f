package popups

import (
	"encoding/json"
	"testing"

	snapshot "github.com/jamesrr39/go-snapshot-testing"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_sedeCardSnapshot(t *testing.T) {
	props := geojson.Properties{
		"nombre_sede":   "I.E. La Esperanza Sede Principal",
		"codigo_dane":   "205001000123",
		"estado":        "ACTIVA",
		"material":      "Ladrillo",
		"sostenimiento": "OFICIAL",
		"oferta_1":      "Preescolar",
		"oferta_2":      "Primaria",
		"oferta_3":      "Secundaria",
		"municipio":     "Medellín",
		"matricula":     120,
		"internet":      "sí",
		"energia":       "No",
	}

	card := Compose(props)

	rendered, err := json.MarshalIndent(card, "", "  ")
	require.NoError(t, err)

	snapshot.AssertMatchesSnapshot(t, "sede_card", snapshot.NewTextSnapshot(string(rendered)))
}

func TestCompose_placeholders(t *testing.T) {
	card := Compose(geojson.Properties{})

	assert.Equal(t, TitlePlaceholder, card.Title)
	assert.Equal(t, SubtitlePlaceholder, card.Subtitle)
	assert.Empty(t, card.Rows)
	assert.Empty(t, card.Badges)
	assert.Equal(t, EmptyCardNote, card.Note)
}

func TestCompose_absentRowsAreOmitted(t *testing.T) {
	card := Compose(geojson.Properties{
		"nombre_sede": "Sede Rural El Placer",
		"estado":      "ACTIVA",
		"material":    "   ", // blank values resolve as absent
	})

	assert.Equal(t, "Sede Rural El Placer", card.Title)
	assert.Equal(t, SubtitlePlaceholder, card.Subtitle)

	require.Len(t, card.Rows, 1)
	assert.Equal(t, Row{Label: "Estado", Value: "ACTIVA"}, card.Rows[0])

	assert.Empty(t, card.Note, "a card with content never carries the empty placeholder")
}

func TestCompose_nivelPrefersCanonicalField(t *testing.T) {
	card := Compose(geojson.Properties{
		"niveles":  "Primaria",
		"oferta_1": "Preescolar",
	})

	require.Len(t, card.Rows, 1)
	assert.Equal(t, Row{Label: "Nivel", Value: "Primaria"}, card.Rows[0])
}

func TestCompose_badgeExcludedWhenFlagIsNeither(t *testing.T) {
	card := Compose(geojson.Properties{
		"nombre_sede": "Sede Central",
		"internet":    "sin dato",
		"energia":     "si",
	})

	require.Len(t, card.Badges, 1)
	assert.Equal(t, Badge{Label: "Energía", Affirmative: true}, card.Badges[0])
}
