package popups

import (
	"strings"

	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/mapaescolar/mapaescolar-app/styling"
	"github.com/paulmach/orb/geojson"
)

const (
	TitlePlaceholder    = "Sede sin nombre"
	SubtitlePlaceholder = "Sin código"
	EmptyCardNote       = "Sin atributos registrados"
)

// Card is the structured attribute card shown when a feature is clicked.
// It carries computed content only; the client owns the markup.
type Card struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Rows     []Row   `json:"rows,omitempty"`
	Badges   []Badge `json:"badges,omitempty"`
	Note     string  `json:"note,omitempty"`
}

type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Badge struct {
	Label       string `json:"label"`
	Affirmative bool   `json:"affirmative"`
}

var titleCandidates = []string{"nombre_sede", "NOMBRE_SEDE", "nombre", "NOMBRE", "nombre_ver", "NOMBRE_VER", "sede"}

var subtitleCandidates = []string{"codigo_dane", "CODIGO_DANE", "cod_dane", "dane", "codigo_ver", "CODIGO_VER"}

type rowSpec struct {
	Label      string
	Candidates []string

	// Fallback derives a value when none of the candidates resolve.
	Fallback func(props geojson.Properties) (string, bool)
}

// rowTable is fixed and dataset-agnostic: the candidate lists absorb the
// naming differences between source documents, and rows that resolve
// nothing are omitted from the card.
var rowTable = []rowSpec{
	{Label: "Estado", Candidates: []string{"estado", "ESTADO"}},
	{Label: "Material", Candidates: []string{"material", "MATERIAL", "tipo_material"}},
	{Label: "Sostenimiento", Candidates: []string{"sostenimiento", "SOSTENIMIENTO"}},
	{Label: "Nivel", Candidates: []string{"niveles", "NIVELES", "nivel", "NIVEL"}, Fallback: joinOfertas},
	{Label: "Departamento", Candidates: []string{"departamento", "DEPARTAMENTO", "nombre_departamento"}},
	{Label: "Municipio", Candidates: []string{"municipio", "MUNICIPIO", "nombre_municipio"}},
	{Label: "Vereda", Candidates: []string{"vereda", "VEREDA", "nombre_ver"}},
	{Label: "Matrícula total", Candidates: []string{"matricula", "MATRICULA", "matricula_total", "total_matricula"}},
}

var badgeTable = []struct {
	Label      string
	Candidates []string
}{
	{Label: "Internet", Candidates: []string{"internet", "INTERNET", "tiene_internet"}},
	{Label: "Energía", Candidates: []string{"energia", "ENERGIA", "tiene_energia"}},
}

// ofertaFields are the per-level offer sub-fields joined into the Nivel row
// when the canonical field is absent.
var ofertaFields = []string{"oferta_1", "oferta_2", "oferta_3", "oferta_4"}

// Compose assembles the attribute card for one feature.
func Compose(props geojson.Properties) *Card {
	card := new(Card)

	title, titleOK := mapaescolar.ResolveAttribute(props, titleCandidates)
	if !titleOK {
		title = TitlePlaceholder
	}
	card.Title = title

	subtitle, subtitleOK := mapaescolar.ResolveAttribute(props, subtitleCandidates)
	if !subtitleOK {
		subtitle = SubtitlePlaceholder
	}
	card.Subtitle = subtitle

	for _, spec := range rowTable {
		value, ok := mapaescolar.ResolveAttribute(props, spec.Candidates)
		if !ok && spec.Fallback != nil {
			value, ok = spec.Fallback(props)
		}
		if !ok {
			continue
		}
		card.Rows = append(card.Rows, Row{Label: spec.Label, Value: value})
	}

	for _, spec := range badgeTable {
		value, ok := mapaescolar.ResolveAttribute(props, spec.Candidates)
		if !ok {
			continue
		}

		switch styling.ClassifyFlag(value) {
		case styling.FlagAffirmative:
			card.Badges = append(card.Badges, Badge{Label: spec.Label, Affirmative: true})
		case styling.FlagNegative:
			card.Badges = append(card.Badges, Badge{Label: spec.Label, Affirmative: false})
		}
	}

	if !titleOK && !subtitleOK && len(card.Rows) == 0 && len(card.Badges) == 0 {
		card.Note = EmptyCardNote
	}

	return card
}

func joinOfertas(props geojson.Properties) (string, bool) {
	var parts []string
	for _, field := range ofertaFields {
		value, ok := mapaescolar.ResolveAttribute(props, []string{field})
		if !ok {
			continue
		}
		parts = append(parts, value)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " / "), true
}
