package bloom

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	// Name is the name of the node that was hit, or "" for empty space.
	Name    string
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
	Button  MouseButton
}

const defaultCommandCap = 1024

// Scene is the top-level object that owns the node tree, input state, and
// render buffers.
type Scene struct {
	root   *Node
	store  EntityStore
	debug  bool
	logger *log.Logger

	// Render state
	commands   []RenderCommand
	batchVerts []ebiten.Vertex
	batchInds  []uint16

	// Input state
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	// Injected input and automation
	injectQueue     []syntheticPointerEvent
	confirmQueued   bool
	screenshotQueue []string
	testRunner      *TestRunner

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ScreenshotScene names the visible garden scene in screenshot files.
	ScreenshotScene func() string

	// OnConfirm is called for every confirm request: a press of Enter or
	// Space in the window, or an injected confirm.
	OnConfirm func()
	// OnResize is called when a test script resizes the scene.
	OnResize func(width, height float64)
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		logger:        log.NewWithOptions(io.Discard, log.Options{}),
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		ScreenshotDir: "screenshots",
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update advances the scene by one tick and then reads window input. Input
// injected by InjectPress and friends replaces the real mouse for the frame
// it is consumed in.
func (s *Scene) Update() {
	if !s.Step(1.0 / float64(ebiten.TPS())) {
		s.processInput()
	}
}

// Step advances node callbacks and particles by dt seconds without reading
// the window, runs one step of the attached test runner and consumes one
// injected pointer event. It reports whether an injected event was consumed.
// Tests drive the scene through Step.
func (s *Scene) Step(dt float64) bool {
	// Refresh world transforms first so hit testing and OnUpdate callbacks
	// see accurate positions this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	s.root.Walk(func(n *Node) bool {
		if n.OnUpdate != nil {
			n.OnUpdate(dt)
		}
		return true
	})
	updateParticles(s.root, dt)

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if s.confirmQueued {
		s.confirmQueued = false
		s.confirm()
	}
	return s.processInjectedInput()
}

// Draw traverses the scene tree, emits render commands in paint order, and
// submits them to the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.commands = s.commands[:0]

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.traverse(s.root, identityTransform, 1.0, false)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = countDrawCalls(s.commands)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetLogger replaces the scene's logger. Nil restores the discarding logger.
func (s *Scene) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s.logger = logger
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *log.Logger {
	return s.logger
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// confirm forwards a confirm request to OnConfirm and the entity store.
func (s *Scene) confirm() {
	if s.OnConfirm != nil {
		s.OnConfirm()
	}
	if s.store != nil {
		s.store.EmitEvent(InteractionEvent{Type: EventConfirm})
	}
}
