package viewer

import (
	"sync"

	"github.com/mapaescolar/mapaescolar-app/labeling"
	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
	"github.com/mapaescolar/mapaescolar-app/popups"
	"github.com/paulmach/orb/geojson"
)

// BuiltFeature is one classified feature ready for display.
type BuiltFeature struct {
	Feature *geojson.Feature             `json:"feature"`
	Symbol  mapaescolar.SymbolDescriptor `json:"symbol"`
	Card    *popups.Card                 `json:"card"`
}

// BuiltLayer is the cached product of one build pipeline run. It is owned
// by the layer registry and never mutated after construction.
type BuiltLayer struct {
	Spec      *mapaescolar.LayerSpec    `json:"-"`
	Key       mapaescolar.LayerKey      `json:"key"`
	Kind      mapaescolar.LayerKind     `json:"-"`
	Features  []*BuiltFeature           `json:"features"`
	Labels    []*mapaescolar.LabelEntry `json:"labels,omitempty"`
	LabelRule *labeling.ZoomRule        `json:"labelRule,omitempty"`
}

// MapSurface is the rendering surface the controller attaches built layers
// to. The controller is its sole writer.
type MapSurface interface {
	Attach(layer *BuiltLayer, visible bool)
	Detach(key mapaescolar.LayerKey)
	SetVisible(key mapaescolar.LayerKey, visible bool)
}

// SurfaceEntry describes one attached layer in draw order.
type SurfaceEntry struct {
	Key     mapaescolar.LayerKey `json:"key"`
	Kind    string               `json:"kind"`
	Visible bool                 `json:"visible"`
}

type paneEntry struct {
	layer   *BuiltLayer
	visible bool
}

// InMemorySurface keeps two panes so polygon layers always sit beneath
// point layers no matter the activation order. The invariant is structural,
// decided once at attach time.
type InMemorySurface struct {
	mu          sync.Mutex
	polygonPane []*paneEntry
	pointPane   []*paneEntry
}

func NewInMemorySurface() *InMemorySurface {
	return &InMemorySurface{}
}

func (s *InMemorySurface) Attach(layer *BuiltLayer, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detachLocked(layer.Key)

	entry := &paneEntry{layer: layer, visible: visible}
	if layer.Kind == mapaescolar.LayerKindPolygon {
		s.polygonPane = append(s.polygonPane, entry)
	} else {
		s.pointPane = append(s.pointPane, entry)
	}
}

func (s *InMemorySurface) Detach(key mapaescolar.LayerKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.detachLocked(key)
}

func (s *InMemorySurface) detachLocked(key mapaescolar.LayerKey) {
	s.polygonPane = removeFromPane(s.polygonPane, key)
	s.pointPane = removeFromPane(s.pointPane, key)
}

func removeFromPane(pane []*paneEntry, key mapaescolar.LayerKey) []*paneEntry {
	kept := pane[:0]
	for _, entry := range pane {
		if entry.layer.Key == key {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

func (s *InMemorySurface) SetVisible(key mapaescolar.LayerKey, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range append(append([]*paneEntry{}, s.polygonPane...), s.pointPane...) {
		if entry.layer.Key == key {
			entry.visible = visible
		}
	}
}

func (s *InMemorySurface) Attached(key mapaescolar.LayerKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entriesLocked() {
		if entry.layer.Key == key {
			return true
		}
	}
	return false
}

func (s *InMemorySurface) IsVisible(key mapaescolar.LayerKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.entriesLocked() {
		if entry.layer.Key == key {
			return entry.visible
		}
	}
	return false
}

// DrawOrder lists attached layers bottom-up: the polygon pane first, then
// the point pane.
func (s *InMemorySurface) DrawOrder() []SurfaceEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var order []SurfaceEntry
	for _, entry := range s.entriesLocked() {
		order = append(order, SurfaceEntry{
			Key:     entry.layer.Key,
			Kind:    entry.layer.Kind.String(),
			Visible: entry.visible,
		})
	}
	return order
}

func (s *InMemorySurface) entriesLocked() []*paneEntry {
	entries := make([]*paneEntry, 0, len(s.polygonPane)+len(s.pointPane))
	entries = append(entries, s.polygonPane...)
	entries = append(entries, s.pointPane...)
	return entries
}
