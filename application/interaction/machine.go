package interaction

import (
	"time"

	"go.uber.org/zap"

	"graphcanvas/application/hittest"
	"graphcanvas/application/menu"
	"graphcanvas/domain/core/aggregates"
	"graphcanvas/domain/core/valueobjects"
	"graphcanvas/domain/events"
	pkgerrors "graphcanvas/pkg/errors"
)

// Config holds the machine's interaction tuning
type Config struct {
	SnapToGrid    bool
	GridSize      float64
	MinNodeWidth  float64
	MinNodeHeight float64
	SurfaceWidth  float64
	SurfaceHeight float64
	MenuWidth     float64
	MenuHeight    float64
}

// DefaultConfig returns the standard interaction tuning
func DefaultConfig() Config {
	return Config{
		SnapToGrid:    true,
		GridSize:      20,
		MinNodeWidth:  40,
		MinNodeHeight: 30,
		SurfaceWidth:  1920,
		SurfaceHeight: 1080,
		MenuWidth:     menu.DefaultWidth,
		MenuHeight:    menu.DefaultHeight,
	}
}

// Machine is the interaction state machine. It owns the current Mode,
// routes normalized input events, and is the only path from gestures to
// graph mutations. Single-threaded: one event is processed to completion
// before the next arrives.
type Machine struct {
	graph    *aggregates.Graph
	tester   *hittest.Tester
	menuCtrl *menu.Controller
	viewport *Viewport
	bus      *events.Bus
	logger   *zap.Logger
	cfg      Config

	mode    Mode
	surface valueobjects.Rect
}

// NewMachine creates an idle machine over the given graph
func NewMachine(graph *aggregates.Graph, bus *events.Bus, logger *zap.Logger, cfg Config) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bus == nil {
		bus = events.NewBus()
	}
	origin, _ := valueobjects.NewPosition(0, 0)
	size, _ := valueobjects.NewSize(cfg.SurfaceWidth, cfg.SurfaceHeight)

	return &Machine{
		graph:    graph,
		tester:   hittest.NewTester(graph),
		menuCtrl: menu.NewControllerWithSize(graph.Registry(), cfg.MenuWidth, cfg.MenuHeight),
		viewport: NewViewport(),
		bus:      bus,
		logger:   logger,
		cfg:      cfg,
		mode:     Idle(),
		surface:  valueobjects.NewRect(origin, size),
	}
}

// Mode returns the current interaction state
func (m *Machine) Mode() Mode {
	return m.mode
}

// Viewport returns the machine's viewport
func (m *Machine) Viewport() *Viewport {
	return m.viewport
}

// Surface returns the current surface bounds
func (m *Machine) Surface() valueobjects.Rect {
	return m.surface
}

// HandleEvent routes one normalized input event through the state
// machine. A returned error is a rejected gesture; the graph is
// unchanged and the machine is in a well-defined state.
func (m *Machine) HandleEvent(ev InputEvent) error {
	// Surface bounds updates and wheel zoom apply in every mode
	switch ev.Kind {
	case EventSurfaceResize:
		return m.resizeSurface(ev.Width, ev.Height)
	case EventWheel:
		m.viewport.ZoomAt(ev.Position, ev.Delta)
		return nil
	}

	switch m.mode.Kind {
	case ModeIdle:
		return m.handleIdle(ev)
	case ModeDraggingNode:
		return m.handleDragging(ev)
	case ModePanningViewport:
		return m.handlePanning(ev)
	case ModeDrawingConnection:
		return m.handleDrawing(ev)
	case ModeResizingNode:
		return m.handleResizing(ev)
	case ModeEditingField:
		return m.handleEditing(ev)
	case ModeContextMenuOpen:
		return m.handleMenu(ev)
	}
	return nil
}

// handleIdle dispatches events while the machine is at rest
func (m *Machine) handleIdle(ev InputEvent) error {
	switch ev.Kind {
	case EventPointerDown:
		if ev.Button == ButtonRight {
			return m.openMenu(ev.Position, "")
		}
		return m.pressAt(ev.Position)
	case EventContextMenuRequest:
		return m.openMenu(ev.Position, ev.Field)
	case EventFieldActivate:
		return m.activateField(ev.NodeID, ev.Field)
	}
	return nil
}

// pressAt starts the gesture implied by whatever sits under the pointer
func (m *Machine) pressAt(screen valueobjects.Position) error {
	graphPos := m.viewport.ToGraph(screen)
	hit := m.tester.HitTest(graphPos)

	switch hit.Kind {
	case hittest.TargetResizeHandle:
		node, ok := m.graph.Node(hit.NodeID)
		if !ok {
			return pkgerrors.ErrNodeNotFound.WithDetail("node_id", hit.NodeID.String())
		}
		if err := m.graph.Validator().CanResize(node); err != nil {
			return err
		}
		m.mode = Mode{
			Kind:          ModeResizingNode,
			NodeID:        hit.NodeID,
			PreviewWidth:  node.Size().Width(),
			PreviewHeight: node.Size().Height(),
		}

	case hittest.TargetSlot:
		m.mode = Mode{
			Kind:       ModeDrawingConnection,
			Origin:     hit.Endpoint,
			PointerPos: graphPos,
		}
		m.bus.Publish(events.NewConnectionStarted(hit.Endpoint, time.Now()))

	case hittest.TargetNode:
		node, ok := m.graph.Node(hit.NodeID)
		if !ok {
			return pkgerrors.ErrNodeNotFound.WithDetail("node_id", hit.NodeID.String())
		}
		if err := m.graph.Validator().CanMove(node); err != nil {
			m.logger.Debug("drag rejected",
				zap.String("node_id", hit.NodeID.String()))
			return err
		}
		m.mode = Mode{
			Kind:    ModeDraggingNode,
			NodeID:  hit.NodeID,
			GrabDX:  graphPos.X() - node.Position().X(),
			GrabDY:  graphPos.Y() - node.Position().Y(),
			DragPos: node.Position(),
		}

	case hittest.TargetEdge:
		// Edges have no press gesture; removal goes through the editor API
		return nil

	case hittest.TargetNothing:
		offX, offY := m.viewport.Offset()
		m.mode = Mode{
			Kind:         ModePanningViewport,
			LastScreen:   screen,
			SavedOffsetX: offX,
			SavedOffsetY: offY,
		}
	}
	return nil
}

// handleDragging moves a node preview; release commits, escape cancels
func (m *Machine) handleDragging(ev InputEvent) error {
	switch ev.Kind {
	case EventPointerMove:
		graphPos := m.viewport.ToGraph(ev.Position)
		raw, err := valueobjects.NewPosition(graphPos.X()-m.mode.GrabDX, graphPos.Y()-m.mode.GrabDY)
		if err != nil {
			return err
		}
		m.mode.DragPos = m.snap(raw)
		m.mode.DragLive = true
		return nil

	case EventPointerUp:
		mode := m.mode
		m.mode = Idle()
		if !mode.DragLive {
			return nil // a plain click, nothing moved
		}
		if err := m.graph.MoveNode(mode.NodeID, mode.DragPos); err != nil {
			return err
		}
		m.flushGraphEvents()
		return nil

	case EventKeyEscape:
		m.mode = Idle()
		return nil
	}
	return nil
}

// handlePanning tracks the pointer; release commits, escape restores
func (m *Machine) handlePanning(ev InputEvent) error {
	switch ev.Kind {
	case EventPointerMove:
		m.viewport.Pan(
			ev.Position.X()-m.mode.LastScreen.X(),
			ev.Position.Y()-m.mode.LastScreen.Y(),
		)
		m.mode.LastScreen = ev.Position
		return nil

	case EventPointerUp:
		m.mode = Idle()
		return nil

	case EventKeyEscape:
		m.viewport.SetOffset(m.mode.SavedOffsetX, m.mode.SavedOffsetY)
		m.mode = Idle()
		return nil
	}
	return nil
}

// handleDrawing tracks a pending connection; release over a slot commits
func (m *Machine) handleDrawing(ev InputEvent) error {
	switch ev.Kind {
	case EventPointerMove:
		m.mode.PointerPos = m.viewport.ToGraph(ev.Position)
		return nil

	case EventPointerUp:
		mode := m.mode
		m.mode = Idle()

		graphPos := m.viewport.ToGraph(ev.Position)
		hit := m.tester.HitTest(graphPos)
		if hit.Kind != hittest.TargetSlot {
			m.bus.Publish(events.NewConnectionRejected(mode.Origin, "", time.Now()))
			return nil
		}

		if _, err := m.graph.AddEdge(mode.Origin, hit.Endpoint); err != nil {
			reason := ""
			if domainErr := pkgerrors.GetDomainError(err); domainErr != nil {
				reason = domainErr.Code
			}
			m.bus.Publish(events.NewConnectionRejected(mode.Origin, reason, time.Now()))
			m.logger.Debug("connection rejected",
				zap.String("origin", mode.Origin.String()),
				zap.String("reason", reason))
			return err
		}
		m.flushGraphEvents()
		return nil

	case EventKeyEscape:
		origin := m.mode.Origin
		m.mode = Idle()
		m.bus.Publish(events.NewConnectionRejected(origin, "", time.Now()))
		return nil
	}
	return nil
}

// handleResizing tracks a size preview; release commits, escape cancels
func (m *Machine) handleResizing(ev InputEvent) error {
	switch ev.Kind {
	case EventPointerMove:
		node, ok := m.graph.Node(m.mode.NodeID)
		if !ok {
			m.mode = Idle()
			return pkgerrors.ErrNodeNotFound.WithDetail("node_id", m.mode.NodeID.String())
		}
		graphPos := m.viewport.ToGraph(ev.Position)
		width := graphPos.X() - node.Position().X()
		height := graphPos.Y() - node.Position().Y()
		if width < m.cfg.MinNodeWidth {
			width = m.cfg.MinNodeWidth
		}
		if height < m.cfg.MinNodeHeight {
			height = m.cfg.MinNodeHeight
		}
		m.mode.PreviewWidth = width
		m.mode.PreviewHeight = height
		return nil

	case EventPointerUp:
		mode := m.mode
		m.mode = Idle()
		size, err := valueobjects.NewSize(mode.PreviewWidth, mode.PreviewHeight)
		if err != nil {
			return err
		}
		if err := m.graph.ResizeNode(mode.NodeID, size); err != nil {
			return err
		}
		m.flushGraphEvents()
		return nil

	case EventKeyEscape:
		m.mode = Idle()
		return nil
	}
	return nil
}

// handleEditing buffers field text; commit assigns, escape discards
func (m *Machine) handleEditing(ev InputEvent) error {
	switch ev.Kind {
	case EventFieldInput:
		m.mode.Buffer = ev.Text
		return nil

	case EventFieldCommit:
		if err := m.graph.SetField(m.mode.NodeID, m.mode.Field, m.mode.Buffer); err != nil {
			// Stay in editing so the host can fix the literal
			return err
		}
		m.mode = Idle()
		m.flushGraphEvents()
		return nil

	case EventKeyEscape:
		m.mode = Idle()
		return nil
	}
	return nil
}

// handleMenu resolves a selection or dismisses the menu
func (m *Machine) handleMenu(ev InputEvent) error {
	switch ev.Kind {
	case EventMenuSelect:
		state := m.mode.Menu
		template, ok := state.Select(ev.Index)
		if !ok {
			return pkgerrors.NewValidationError("menu selection out of range")
		}
		m.closeMenu()

		// Spawn at the clamped panel anchor so the node stays on-surface
		spawn := m.snap(m.viewport.ToGraph(state.Position))
		if _, err := m.graph.AddNode(template, spawn); err != nil {
			return err
		}
		m.flushGraphEvents()
		return nil

	case EventMenuDismiss, EventKeyEscape, EventPointerDown:
		// Entry clicks arrive as MenuSelect; any other press dismisses
		m.closeMenu()
		return nil
	}
	return nil
}

// openMenu builds a menu state clamped to the surface
func (m *Machine) openMenu(screen valueobjects.Position, groupID string) error {
	state, err := m.menuCtrl.Open(screen, groupID, m.surface)
	if err != nil {
		return err
	}
	m.mode = Mode{Kind: ModeContextMenuOpen, Menu: state}
	m.bus.Publish(events.NewContextMenuOpened(state.Position, groupID, time.Now()))
	return nil
}

// closeMenu returns to idle and announces the dismissal
func (m *Machine) closeMenu() {
	m.mode = Idle()
	m.bus.Publish(events.NewContextMenuClosed(time.Now()))
}

// activateField starts editing an existing field on a node
func (m *Machine) activateField(nodeID valueobjects.NodeID, field string) error {
	node, ok := m.graph.Node(nodeID)
	if !ok {
		return pkgerrors.ErrNodeNotFound.WithDetail("node_id", nodeID.String())
	}
	value, err := node.Field(field)
	if err != nil {
		return err
	}
	m.mode = Mode{
		Kind:   ModeEditingField,
		NodeID: nodeID,
		Field:  field,
		Buffer: value.String(),
	}
	return nil
}

// resizeSurface updates the surface bounds used for menu clamping
func (m *Machine) resizeSurface(width, height float64) error {
	size, err := valueobjects.NewSize(width, height)
	if err != nil {
		return err
	}
	origin, _ := valueobjects.NewPosition(0, 0)
	m.surface = valueobjects.NewRect(origin, size)
	return nil
}

// snap applies grid snapping when configured
func (m *Machine) snap(p valueobjects.Position) valueobjects.Position {
	if !m.cfg.SnapToGrid {
		return p
	}
	return p.SnapToGrid(m.cfg.GridSize)
}

// flushGraphEvents publishes the graph's pending domain events
func (m *Machine) flushGraphEvents() {
	pending := m.graph.GetUncommittedEvents()
	if len(pending) == 0 {
		return
	}
	m.bus.PublishAll(pending)
	m.graph.MarkEventsAsCommitted()
}
