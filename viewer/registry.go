package viewer

import (
	"context"
	"fmt"
	"sync"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/goutil/logpkg"
	"github.com/mapaescolar/mapaescolar-app/mapaescolar"
)

type layerSlot struct {
	spec  *mapaescolar.LayerSpec
	state mapaescolar.ToggleState
	built *BuiltLayer

	// wantVisible records the most recent requested visibility. A
	// deactivate observed while a build is in flight lands the completed
	// layer on the surface hidden instead of flashing it visible.
	wantVisible bool
}

// ToggleController owns one cache slot per layer key. A layer is built
// exactly once on first activation and cached for the session; subsequent
// toggles only flip visibility. The controller is the sole writer of the
// slot map and of the rendering surface.
type ToggleController struct {
	logger  *logpkg.Logger
	builder LayerBuilder
	surface MapSurface
	status  StatusSink
	panel   *ControlPanel

	mu    sync.Mutex
	order []mapaescolar.LayerKey
	slots map[mapaescolar.LayerKey]*layerSlot
}

func NewToggleController(
	logger *logpkg.Logger,
	builder LayerBuilder,
	surface MapSurface,
	status StatusSink,
	panel *ControlPanel,
	specs []*mapaescolar.LayerSpec,
) *ToggleController {
	controller := &ToggleController{
		logger:  logger,
		builder: builder,
		surface: surface,
		status:  status,
		panel:   panel,
		slots:   map[mapaescolar.LayerKey]*layerSlot{},
	}

	for _, spec := range specs {
		controller.order = append(controller.order, spec.Key)
		controller.slots[spec.Key] = &layerSlot{
			spec:  spec,
			state: mapaescolar.ToggleStateUnbuilt,
		}
	}

	return controller
}

// Toggle drives one named boolean control change.
func (c *ToggleController) Toggle(ctx context.Context, key mapaescolar.LayerKey, on bool) errorsx.Error {
	if on {
		return c.Activate(ctx, key)
	}
	return c.Deactivate(key)
}

// Activate makes the layer visible, building it first if this is the first
// activation of the session. At most one build per key is ever in flight;
// an activation that observes a loading slot only re-records the wanted
// visibility.
func (c *ToggleController) Activate(ctx context.Context, key mapaescolar.LayerKey) errorsx.Error {
	c.mu.Lock()

	slot, ok := c.slots[key]
	if !ok {
		c.mu.Unlock()
		return errorsx.Errorf("unknown layer %q", key)
	}

	if parentKey := slot.spec.ParentKey; parentKey != "" {
		parent := c.slots[parentKey]
		if parent == nil || parent.state != mapaescolar.ToggleStateBuiltVisible {
			c.mu.Unlock()
			message := fmt.Sprintf("layer %q requires its parent %q to be active", key, parentKey)
			c.status.Set(message)
			return errorsx.Errorf(message)
		}
	}

	if slot.spec.Kind == mapaescolar.LayerKindGroup {
		// groups build nothing; activation only opens the gate for children
		slot.state = mapaescolar.ToggleStateBuiltVisible
		slot.wantVisible = true
		c.applyControlsLocked(slot, true)
		c.status.Clear()
		c.mu.Unlock()
		return nil
	}

	slot.wantVisible = true

	switch slot.state {
	case mapaescolar.ToggleStateBuiltVisible:
		c.mu.Unlock()
		return nil

	case mapaescolar.ToggleStateBuiltHidden:
		slot.state = mapaescolar.ToggleStateBuiltVisible
		c.surface.SetVisible(key, true)
		c.applyControlsLocked(slot, true)
		c.status.Clear()
		c.mu.Unlock()
		return nil

	case mapaescolar.ToggleStateLoading:
		// the in-flight build will honor wantVisible when it completes
		c.panel.SetControl(key, true)
		c.mu.Unlock()
		return nil
	}

	slot.state = mapaescolar.ToggleStateLoading
	c.panel.SetControl(key, true)
	spec := slot.spec
	c.mu.Unlock()

	// the build runs outside the lock so builds for other keys may overlap
	built, err := c.builder.BuildLayer(ctx, spec)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		slot.state = mapaescolar.ToggleStateError
		c.rollbackLocked(slot, err)
		return err
	}

	slot.built = built

	visible := slot.wantVisible && c.parentVisibleLocked(spec)
	c.surface.Attach(built, visible)
	if visible {
		slot.state = mapaescolar.ToggleStateBuiltVisible
		c.status.Clear()
	} else {
		slot.state = mapaescolar.ToggleStateBuiltHidden
	}
	c.applyControlsLocked(slot, visible)

	return nil
}

// Deactivate hides the layer. It never discards the cached build; it is a
// no-op for layers that were never built. Deactivating a group forces all
// of its children off.
func (c *ToggleController) Deactivate(key mapaescolar.LayerKey) errorsx.Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, ok := c.slots[key]
	if !ok {
		return errorsx.Errorf("unknown layer %q", key)
	}

	c.deactivateLocked(slot)
	return nil
}

func (c *ToggleController) deactivateLocked(slot *layerSlot) {
	slot.wantVisible = false
	key := slot.spec.Key

	if slot.spec.Kind == mapaescolar.LayerKindGroup {
		if slot.state == mapaescolar.ToggleStateBuiltVisible {
			slot.state = mapaescolar.ToggleStateBuiltHidden
		}
		c.applyControlsLocked(slot, false)

		for _, childKey := range c.order {
			child := c.slots[childKey]
			if child.spec.ParentKey == key {
				c.deactivateLocked(child)
			}
		}
		return
	}

	switch slot.state {
	case mapaescolar.ToggleStateBuiltVisible:
		slot.state = mapaescolar.ToggleStateBuiltHidden
		c.surface.SetVisible(key, false)
	case mapaescolar.ToggleStateLoading:
		// wantVisible is already off; the completed build attaches hidden
	}

	c.applyControlsLocked(slot, false)
}

// rollbackLocked is the single failure path of the build pipeline: back to
// unbuilt, nothing left on the surface, control reverted, message surfaced.
func (c *ToggleController) rollbackLocked(slot *layerSlot, err errorsx.Error) {
	key := slot.spec.Key

	c.logger.Error("building layer %q failed: %s\nstack: %s", key, err.Error(), err.Stack())

	c.surface.Detach(key)

	slot.state = mapaescolar.ToggleStateUnbuilt
	slot.built = nil
	slot.wantVisible = false
	c.applyControlsLocked(slot, false)

	c.status.Set(fmt.Sprintf("failed to load layer %q: %s", key, err.Error()))
}

func (c *ToggleController) applyControlsLocked(slot *layerSlot, on bool) {
	c.panel.SetControl(slot.spec.Key, on)
	c.panel.SetLegend(slot.spec.LegendID, on)
}

func (c *ToggleController) parentVisibleLocked(spec *mapaescolar.LayerSpec) bool {
	if spec.ParentKey == "" {
		return true
	}
	parent := c.slots[spec.ParentKey]
	if parent == nil {
		return false
	}
	return parent.state == mapaescolar.ToggleStateBuiltVisible
}

func (c *ToggleController) State(key mapaescolar.LayerKey) (mapaescolar.ToggleState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, ok := c.slots[key]
	if !ok {
		return mapaescolar.ToggleStateUnbuilt, false
	}
	return slot.state, true
}

func (c *ToggleController) States() map[mapaescolar.LayerKey]mapaescolar.ToggleState {
	c.mu.Lock()
	defer c.mu.Unlock()

	states := make(map[mapaescolar.LayerKey]mapaescolar.ToggleState, len(c.slots))
	for key, slot := range c.slots {
		states[key] = slot.state
	}
	return states
}

// Layer returns the cached build product for a key together with the slot
// state. The layer is nil unless the state is one of the built states.
func (c *ToggleController) Layer(key mapaescolar.LayerKey) (*BuiltLayer, mapaescolar.ToggleState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, ok := c.slots[key]
	if !ok {
		return nil, mapaescolar.ToggleStateUnbuilt, false
	}
	return slot.built, slot.state, true
}

// Specs lists the layer specs in registration order.
func (c *ToggleController) Specs() []*mapaescolar.LayerSpec {
	c.mu.Lock()
	defer c.mu.Unlock()

	specs := make([]*mapaescolar.LayerSpec, 0, len(c.order))
	for _, key := range c.order {
		specs = append(specs, c.slots[key].spec)
	}
	return specs
}
