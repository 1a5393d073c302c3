package grove

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the widget text is rebuilt, in seconds.
const fpsRefresh = 0.5

// NewFPSWidget creates a Position node that prints the current FPS and TPS
// at its absolute position. The text is refreshed every ~0.5 seconds.
func NewFPSWidget(e *Engine) *Position {
	p := &Position{}
	initPosition(p, "fps_widget", e, fpsWidgetMRO, p)

	var (
		elapsed float64
		text    = "FPS: -\nTPS: -"
	)
	p.OnProcess = func(dt float64) {
		elapsed += dt
		if elapsed < fpsRefresh {
			return
		}
		elapsed = 0
		text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	p.OnDraw = func(screen *ebiten.Image) {
		if screen == nil {
			return
		}
		pos := p.AbsolutePosition()
		ebitenutil.DebugPrintAt(screen, text, int(pos.X), int(pos.Y))
	}
	p.OnReady = func() {
		p.SetProcess(true)
		p.SetDraw(true)
	}
	return p
}
