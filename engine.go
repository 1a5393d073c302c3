package grove

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/grove/assets"
	"github.com/phanxgames/grove/assets/blobstore"
	"go.uber.org/zap"
)

// Engine owns the asset manager and the active node tree and drives them
// from the ebiten game loop. It implements ebiten.Game.
//
// Each Update runs, in order: the test runner step, input polling plus one
// injected event, input dispatch (unconsumed events go to the EventSink),
// the process channel, then deferred calls. Draw runs the draw channel.
type Engine struct {
	cfg    Config
	log    *zap.Logger
	assets *assets.Manager
	root   *Node
	sink   EventSink
	debug  bool

	running  bool
	quit     bool
	deferred []func()

	// Input state
	events      []InputEvent
	injectQueue []InputEvent
	keyBuf      []ebiten.Key
	cursorX     float64
	cursorY     float64

	// Screenshots and scripted runs
	ScreenshotDir   string
	screenshotQueue []string
	testRunner      *TestRunner

	stats frameStats
}

// NewEngine creates an engine with the default loaders registered and one
// locator per configured asset root, followed by the blob locator when a
// container is configured. A nil log discards output.
func NewEngine(cfg Config, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		cfg:           cfg,
		log:           log,
		assets:        assets.NewManager(log),
		debug:         cfg.Debug,
		ScreenshotDir: "screenshots",
	}
	assets.RegisterDefaultLoaders(e.assets)
	if err := e.ConfigureAssets(cfg.Assets); err != nil {
		return nil, err
	}
	return e, nil
}

// ConfigureAssets registers locators for cfg after any already registered.
func (e *Engine) ConfigureAssets(cfg AssetsConfig) error {
	for _, root := range cfg.Roots {
		e.assets.RegisterLocator(assets.NewFileLocator(root))
	}
	if cfg.Blob.Container == "" {
		return nil
	}
	conn := cfg.Blob.connectionString()
	if conn == "" {
		return errors.New("grove: blob container configured without a connection string")
	}
	loc, err := blobstore.NewFromConnectionString(conn, cfg.Blob.Container, cfg.Blob.Prefix)
	if err != nil {
		return fmt.Errorf("grove: %w", err)
	}
	if cfg.Blob.Timeout > 0 {
		loc.SetTimeout(cfg.Blob.Timeout)
	}
	e.assets.RegisterLocator(loc)
	return nil
}

// Assets returns the engine's asset manager.
func (e *Engine) Assets() *assets.Manager {
	return e.assets
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger {
	return e.log
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config {
	return e.cfg
}

// Root returns the active tree's root, or nil.
func (e *Engine) Root() *Node {
	return e.root
}

// SetRoot makes n the active tree. The previous root's subtree exits the
// tree (it is not disposed); n is detached from any parent and its subtree
// enters the tree. A nil n leaves the engine without a tree.
func (e *Engine) SetRoot(n *Node) {
	if e.root == n {
		return
	}
	if old := e.root; old != nil {
		old.SendExitTree()
	}
	e.root = n
	if n == nil {
		return
	}
	n.RemoveFromParent()
	n.SendEnterTree()
}

// SetEventSink sets the receiver for input events no node consumed.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// Defer queues fn to run after the current frame's process pass. Use it to
// add, remove or dispose nodes from inside hooks.
func (e *Engine) Defer(fn func()) {
	e.deferred = append(e.deferred, fn)
}

// Quit makes the next Update return ebiten.Termination.
func (e *Engine) Quit() {
	e.quit = true
}

// dt is the fixed step passed to the process channel, in seconds.
func (e *Engine) dt() float64 {
	tps := e.cfg.Window.TPS
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

// Update advances one tick.
func (e *Engine) Update() error {
	if e.quit {
		return ebiten.Termination
	}
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	if e.testRunner != nil {
		e.testRunner.step(e)
	}

	e.events = e.events[:0]
	if e.running {
		e.events = e.pollInput(e.events)
	}
	if ev, ok := e.popInjected(); ok {
		e.events = append(e.events, ev)
	}
	for _, ev := range e.events {
		e.dispatchInput(ev)
	}

	var t1 time.Time
	if e.debug {
		t1 = time.Now()
		e.stats.inputTime = t1.Sub(t0)
		e.stats.events = len(e.events)
	}

	if e.root != nil {
		e.root.SendProcess(e.dt())
	}
	e.runDeferred()

	if e.debug {
		e.stats.processTime = time.Since(t1)
	}
	if e.quit {
		return ebiten.Termination
	}
	return nil
}

func (e *Engine) dispatchInput(ev InputEvent) {
	if e.root != nil && e.root.SendInput(ev) {
		return
	}
	if e.sink != nil {
		e.sink.EmitInput(ev)
	}
}

// runDeferred runs queued calls, including any queued while running.
func (e *Engine) runDeferred() {
	for i := 0; i < len(e.deferred); i++ {
		e.deferred[i]()
	}
	clear(e.deferred)
	e.deferred = e.deferred[:0]
}

// Draw runs the draw channel onto screen, then captures queued screenshots.
func (e *Engine) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}
	if e.root != nil {
		e.root.SendDraw(screen)
	}
	e.flushScreenshots(screen)

	if e.debug {
		e.stats.drawTime = time.Since(t0)
		if e.root != nil {
			e.stats.nodes = countNodes(e.root)
		}
		e.debugLog(e.stats)
		e.stats = frameStats{}
	}
}

// Layout returns the configured logical screen size, or the outside size
// when the window is resizable or no size is configured.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := e.cfg.Window.Width, e.cfg.Window.Height
	if e.cfg.Window.Resizable || w <= 0 || h <= 0 {
		return outsideWidth, outsideHeight
	}
	return w, h
}

// Close disposes the active tree and unloads every cached asset.
func (e *Engine) Close() {
	if e.root != nil {
		e.root.Dispose()
		e.root = nil
	}
	e.runDeferred()
	e.assets.UnloadAll()
}
