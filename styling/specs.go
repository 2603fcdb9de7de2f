package styling

import (
	"math"

	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
)

// BuiltinLayerSpecs is the fixed dataset table. Specs are created once at
// startup; callers must treat them as immutable.
func BuiltinLayerSpecs() []*mapaescolar.LayerSpec {
	return []*mapaescolar.LayerSpec{
		{
			Key:                  mapaescolar.LayerKeyVeredas,
			Name:                 "Veredas",
			Kind:                 mapaescolar.LayerKindPolygon,
			SourceKey:            "veredas",
			TopologyEncoded:      true,
			TopologyObject:       "veredas",
			PotentiallyProjected: true,
			NameFields:           []string{"nombre_ver", "NOMBRE_VER", "nombre", "NOMBRE"},
			IDFields:             []string{"codigo_ver", "CODIGO_VER", "dpto_ccdgo"},
			HasLabels:            true,
		},
		{
			Key:         mapaescolar.LayerKeySedes,
			Name:        "Sedes educativas",
			Kind:        mapaescolar.LayerKindPoint,
			SourceKey:   "sedes",
			NameFields:  []string{"nombre_sede", "NOMBRE_SEDE", "nombre", "NOMBRE", "sede"},
			IDFields:    []string{"codigo_dane", "CODIGO_DANE", "cod_dane", "dane"},
			ValueFields: []string{"matricula", "MATRICULA", "matricula_total", "total_matricula"},
			LegendID:    "legend-sedes",
		},
		{
			Key:         mapaescolar.LayerKeyMatricula,
			Name:        "Matrícula por rangos",
			Kind:        mapaescolar.LayerKindPoint,
			SourceKey:   "sedes",
			NameFields:  []string{"nombre_sede", "NOMBRE_SEDE", "nombre", "NOMBRE", "sede"},
			IDFields:    []string{"codigo_dane", "CODIGO_DANE", "cod_dane", "dane"},
			ValueFields: []string{"matricula", "MATRICULA", "matricula_total", "total_matricula"},
			LegendID:    "legend-matricula",
		},
		{
			Key:  mapaescolar.LayerKeyServicios,
			Name: "Servicios",
			Kind: mapaescolar.LayerKindGroup,
		},
		{
			Key:        mapaescolar.LayerKeyInternet,
			Name:       "Cobertura de internet",
			Kind:       mapaescolar.LayerKindPoint,
			SourceKey:  "sedes",
			ParentKey:  mapaescolar.LayerKeyServicios,
			NameFields: []string{"nombre_sede", "NOMBRE_SEDE", "nombre", "NOMBRE", "sede"},
			IDFields:   []string{"codigo_dane", "CODIGO_DANE", "cod_dane", "dane"},
			FlagFields: []string{"internet", "INTERNET", "tiene_internet"},
			LegendID:   "legend-servicios",
		},
		{
			Key:        mapaescolar.LayerKeyEnergia,
			Name:       "Cobertura de energía",
			Kind:       mapaescolar.LayerKindPoint,
			SourceKey:  "sedes",
			ParentKey:  mapaescolar.LayerKeyServicios,
			NameFields: []string{"nombre_sede", "NOMBRE_SEDE", "nombre", "NOMBRE", "sede"},
			IDFields:   []string{"codigo_dane", "CODIGO_DANE", "cod_dane", "dane"},
			FlagFields: []string{"energia", "ENERGIA", "tiene_energia"},
			LegendID:   "legend-servicios",
		},
	}
}

// VeredasPolygonStyle is the fixed style for the administrative polygons.
// Polygon layers carry no per-feature classification.
func VeredasPolygonStyle() mapaescolar.SymbolDescriptor {
	return mapaescolar.SymbolDescriptor{
		FillColor:   "#d9e8d0",
		StrokeColor: "#5a7d4f",
		Weight:      1,
		FillOpacity: 0.35,
	}
}

// RuleFor returns the symbology rule bound to a layer key. Group and
// polygon layers have none and return nil.
func RuleFor(key mapaescolar.LayerKey) SymbologyRule {
	switch key {
	case mapaescolar.LayerKeySedes:
		return &ContinuousScaled{
			Threshold: 100,
			Factor:    0.5,
			MinRadius: 4,
			MaxRadius: 18,
			Base: mapaescolar.SymbolDescriptor{
				FillColor:   "#2b8cbe",
				StrokeColor: "#08519c",
				Weight:      1,
				FillOpacity: 0.75,
			},
		}
	case mapaescolar.LayerKeyMatricula:
		return &ThresholdBucketed{
			Buckets: []Bucket{
				{UpperBound: 50, Descriptor: pointDescriptor(4, "#fee5d9")},
				{UpperBound: 150, Descriptor: pointDescriptor(6, "#fcae91")},
				{UpperBound: 400, Descriptor: pointDescriptor(8, "#fb6a4a")},
				{UpperBound: math.Inf(1), Descriptor: pointDescriptor(11, "#cb181d")},
			},
			Missing: pointDescriptor(3, "#bdbdbd"),
		}
	case mapaescolar.LayerKeyInternet:
		return &Categorical{
			Affirmative: pointDescriptor(6, "#1a9850"),
			Negative:    pointDescriptor(6, "#d73027"),
		}
	case mapaescolar.LayerKeyEnergia:
		return &Categorical{
			Affirmative: pointDescriptor(6, "#66bd63"),
			Negative:    pointDescriptor(6, "#f46d43"),
		}
	}

	return nil
}

func pointDescriptor(radius float64, fill string) mapaescolar.SymbolDescriptor {
	return mapaescolar.SymbolDescriptor{
		Radius:      radius,
		FillColor:   fill,
		StrokeColor: "#4d4d4d",
		Weight:      1,
		FillOpacity: 0.8,
	}
}
