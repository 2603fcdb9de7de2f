package mapaescolar

// LayerKey identifies one togglable dataset layer. Keys are fixed at
// startup and double as the cache index in the layer registry.
type LayerKey string

const (
	LayerKeyVeredas   LayerKey = "veredas"
	LayerKeySedes     LayerKey = "sedes"
	LayerKeyMatricula LayerKey = "matricula"
	LayerKeyServicios LayerKey = "servicios"
	LayerKeyInternet  LayerKey = "internet"
	LayerKeyEnergia   LayerKey = "energia"
)

type LayerKind int

const (
	LayerKindUnknown LayerKind = 0
	LayerKindPolygon LayerKind = 1
	LayerKindPoint   LayerKind = 2
	// LayerKindGroup is a container with no geometry of its own; it only
	// gates the visibility of its child layers.
	LayerKindGroup LayerKind = 3
)

var layerKindNames = []string{
	"unknown",
	"polygon",
	"point",
	"group",
}

func (k LayerKind) String() string {
	return layerKindNames[k]
}

type ToggleState int

const (
	ToggleStateUnbuilt ToggleState = iota
	ToggleStateLoading
	ToggleStateBuiltHidden
	ToggleStateBuiltVisible
	ToggleStateError
)

var toggleStateNames = []string{
	"unbuilt",
	"loading",
	"built-hidden",
	"built-visible",
	"error",
}

func (s ToggleState) String() string {
	return toggleStateNames[s]
}

type ZoomLevel float64

const (
	MinZoomLevel ZoomLevel = 0
	MaxZoomLevel ZoomLevel = 24
)

// SymbolDescriptor is the visual encoding computed for one feature.
// Colors are CSS color strings so the map client can apply them directly.
type SymbolDescriptor struct {
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fillColor"`
	StrokeColor string  `json:"strokeColor"`
	Weight      float64 `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
}

// LabelEntry is a centroid label derived from one polygon feature. Text is
// already word-wrapped; lines are separated by "\n". Visibility and font
// size are not baked in here, they come from the zoom rule at display time.
type LabelEntry struct {
	Text      string  `json:"text"`
	AnchorLon float64 `json:"anchorLon"`
	AnchorLat float64 `json:"anchorLat"`
}

// LayerSpec is the per-LayerKey configuration. Specs are defined at
// startup and immutable afterwards.
type LayerSpec struct {
	Key  LayerKey
	Name string
	Kind LayerKind

	// SourceKey selects the dataset document in the source-resolution
	// tables. Empty for group layers, which fetch nothing.
	SourceKey string

	// ParentKey marks this layer as a dependent sub-layer: it can only be
	// activated while the parent is active, and deactivating the parent
	// forces it off.
	ParentKey LayerKey

	// TopologyEncoded marks the source document as the compact
	// topology-encoded format; TopologyObject names the object to extract.
	TopologyEncoded bool
	TopologyObject  string

	// PotentiallyProjected enables the coordinate sanity check and the
	// opportunistic reprojection fallback for this dataset only.
	PotentiallyProjected bool

	// Ordered candidate field names, most canonical first.
	NameFields  []string
	IDFields    []string
	ValueFields []string // numeric attribute driving the symbology
	FlagFields  []string // yes/no attribute for categorical symbology

	// HasLabels adds a centroid-labels sub-layer derived from NameFields.
	HasLabels bool

	// LegendID names the legend-visibility sink toggled in lockstep with
	// this layer's control. Empty means no legend.
	LegendID string
}
