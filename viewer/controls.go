package viewer

import (
	"sync"

	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
)

// StatusSink receives free-text status messages, cleared on success.
type StatusSink interface {
	Set(message string)
	Clear()
}

type MemoryStatusSink struct {
	mu      sync.Mutex
	message string
}

func NewMemoryStatusSink() *MemoryStatusSink {
	return &MemoryStatusSink{}
}

func (s *MemoryStatusSink) Set(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *MemoryStatusSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = ""
}

func (s *MemoryStatusSink) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// ControlPanel mirrors the client's named boolean layer controls and legend
// visibility sinks. The controller reverts a control after a failed build
// so the panel always reflects the real layer state.
type ControlPanel struct {
	mu       sync.Mutex
	controls map[mapaescolar.LayerKey]bool
	legends  map[string]bool
}

func NewControlPanel() *ControlPanel {
	return &ControlPanel{
		controls: map[mapaescolar.LayerKey]bool{},
		legends:  map[string]bool{},
	}
}

func (p *ControlPanel) SetControl(key mapaescolar.LayerKey, on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controls[key] = on
}

func (p *ControlPanel) Control(key mapaescolar.LayerKey) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.controls[key]
}

func (p *ControlPanel) SetLegend(id string, visible bool) {
	if id == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.legends[id] = visible
}

func (p *ControlPanel) LegendVisible(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.legends[id]
}
