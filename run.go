package grove

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a window configured from the engine's Config and blocks until
// the game loop ends. Quit ends the loop without an error. The engine is
// closed before Run returns.
func Run(e *Engine) error {
	w := e.cfg.Window
	if w.Title != "" {
		ebiten.SetWindowTitle(w.Title)
	}
	if w.Width > 0 && w.Height > 0 {
		ebiten.SetWindowSize(w.Width, w.Height)
	}
	if w.TPS > 0 {
		ebiten.SetTPS(w.TPS)
	}
	if w.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	e.running = true
	defer func() {
		e.running = false
		e.Close()
	}()

	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("grove: run: %w", err)
	}
	return nil
}
