package batflap

import (
	"fmt"
	"math"

	"github.com/vovakirdan/batflap/internal/config"
	"github.com/vovakirdan/batflap/internal/core"
)

// Visual characters for rendering
const (
	BatChar       = '●'
	WingUpChar    = '^'
	WingDownChar  = 'v'
	ObstacleChar  = '█'
	ObstacleInner = '▓'
	CapTopChar    = '▄'
	CapBottomChar = '▀'
	GroundChar    = '═'
	GroundAltChar = '─'
	MoonChar      = '█'
	StarBright    = '*'
	StarDim       = '·'
	ParticleChar  = '•'
	ParticleFaint = '·'
)

const (
	starCount      = 30
	wingFlapSpeed  = 0.3
	cellAspect     = 2.0 // terminal cells are about twice as tall as wide
	minHUDWidth    = 12
	moonOffsetX    = 50
	moonRadius     = 30
	moonShadowDX   = -10
	moonShadowDY   = -5
	moonShadowSize = 25
)

// viewport maps playfield units onto a centered block of screen cells that
// keeps the playfield's aspect ratio.
type viewport struct {
	x, y, w, h int
	sx, sy     float64
}

func newViewport(cfg config.GameConfig, screenW, screenH int) viewport {
	fw, fh := cfg.Playfield.Width, cfg.Playfield.Height

	h := screenH
	w := int(float64(h) * fw / fh * cellAspect)
	if w > screenW {
		w = screenW
		h = int(float64(w) * fh / fw / cellAspect)
	}
	w = core.Max(w, 1)
	h = core.Max(h, 1)

	return viewport{
		x:  (screenW - w) / 2,
		y:  (screenH - h) / 2,
		w:  w,
		h:  h,
		sx: float64(w) / fw,
		sy: float64(h) / fh,
	}
}

// cell converts a playfield point to screen coordinates.
func (v viewport) cell(px, py float64) (int, int) {
	return v.x + int(math.Floor(px*v.sx)), v.y + int(math.Floor(py*v.sy))
}

// rect returns the viewport as a screen rectangle.
func (v viewport) rect() core.Rect {
	return core.NewRect(v.x, v.y, v.w, v.h)
}

// set draws a rune only if it lands inside the viewport.
func (v viewport) set(dst *core.Screen, x, y int, r rune, c core.Color) {
	if v.rect().Contains(x, y) {
		dst.SetColored(x, y, r, c)
	}
}

// Render draws a snapshot into dst. It reads the snapshot only.
func Render(snap Snapshot, cfg config.GameConfig, dst *core.Screen) {
	dst.Clear()
	v := newViewport(cfg, dst.Width(), dst.Height())

	if v.x > 0 && v.y > 0 {
		dst.DrawBox(core.NewRect(v.x-1, v.y-1, v.w+2, v.h+2), core.ColorGray)
	}

	drawSky(dst, v, cfg, snap.Frame)
	for _, o := range snap.Obstacles {
		drawObstacle(dst, v, cfg, o)
	}
	drawGround(dst, v, cfg, snap.Frame)
	for _, p := range snap.Particles {
		drawParticle(dst, v, p)
	}
	if !snap.Exploded() {
		drawBat(dst, v, cfg, snap.Actor)
	}
	drawHUD(dst, v, snap.State)
}

// drawSky renders the twinkling stars and the crescent moon.
func drawSky(dst *core.Screen, v viewport, cfg config.GameConfig, frame int) {
	fw, fh := cfg.Playfield.Width, cfg.Playfield.Height

	for i := 0; i < starCount; i++ {
		px := math.Mod(float64(i*53)+float64(frame)*0.2, fw)
		py := math.Mod(float64(i*127), fh/1.5)
		glow := math.Abs(math.Sin(float64(frame+i*10) * 0.05))
		if glow < 0.3 {
			continue
		}
		star, color := StarDim, core.ColorGray
		if glow > 0.8 {
			star, color = StarBright, core.ColorWhite
		}
		x, y := v.cell(px, py)
		v.set(dst, x, y, star, color)
	}

	cx, cy := fw-moonOffsetX, float64(moonOffsetX)
	sx, sy := cx+moonShadowDX, cy+moonShadowDY
	x0, y0 := v.cell(cx-moonRadius, cy-moonRadius)
	x1, y1 := v.cell(cx+moonRadius, cy+moonRadius)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := (float64(x-v.x) + 0.5) / v.sx
			py := (float64(y-v.y) + 0.5) / v.sy
			lit := math.Hypot(px-cx, py-cy) <= moonRadius
			shadow := math.Hypot(px-sx, py-sy) <= moonShadowSize
			if lit && !shadow {
				v.set(dst, x, y, MoonChar, core.ColorMoon)
			}
		}
	}
}

// drawObstacle renders both segments of an obstacle with caps facing the gap.
func drawObstacle(dst *core.Screen, v viewport, cfg config.GameConfig, o Obstacle) {
	left, top := v.cell(o.X, o.GapTop)
	right, bottom := v.cell(o.X+cfg.Obstacles.Width, o.GapTop+cfg.Obstacles.GapSize)
	right = core.Max(right, left+1)

	for x := left; x < right; x++ {
		r, c := ObstacleInner, core.ColorDarkSlate
		if x == left || x == right-1 {
			r, c = ObstacleChar, core.ColorSlate
		}
		for y := v.y; y < top; y++ {
			v.set(dst, x, y, r, c)
		}
		for y := bottom; y < v.y+v.h; y++ {
			v.set(dst, x, y, r, c)
		}
		v.set(dst, x, top-1, CapTopChar, core.ColorSlate)
		v.set(dst, x, bottom, CapBottomChar, core.ColorSlate)
	}
}

// drawGround renders the scrolling strip along the bottom row.
func drawGround(dst *core.Screen, v viewport, cfg config.GameConfig, frame int) {
	shift := int(float64(frame) * cfg.Obstacles.Speed * v.sx)
	y := v.y + v.h - 1
	dst.DrawHLine(v.x, y, v.w, GroundChar, core.ColorIndigo)
	for x := v.x; x < v.x+v.w; x++ {
		if (x+shift)%4 == 0 {
			dst.SetColored(x, y, GroundAltChar, core.ColorIndigo)
		}
	}
}

// drawParticle renders one burst fragment, fading as its life runs out.
func drawParticle(dst *core.Screen, v viewport, p Particle) {
	r := ParticleChar
	if p.Life < 0.4 {
		r = ParticleFaint
	}
	x, y := v.cell(p.X, p.Y)
	v.set(dst, x, y, r, p.Color)
}

// drawBat renders the body with wings flapping on the animation frame.
func drawBat(dst *core.Screen, v viewport, cfg config.GameConfig, a Actor) {
	x, y := v.cell(cfg.Actor.X, a.Y)

	wing := WingUpChar
	if math.Sin(float64(a.Frame)*wingFlapSpeed) > 0 {
		wing = WingDownChar
	}
	v.set(dst, x-1, y, wing, core.ColorDeepViolet)
	v.set(dst, x, y, BatChar, core.ColorViolet)
	v.set(dst, x+1, y, wing, core.ColorDeepViolet)
}

// drawHUD renders the score and the status overlays.
func drawHUD(dst *core.Screen, v viewport, st SessionState) {
	if v.w >= minHUDWidth {
		dst.DrawTextColored(v.x+1, v.y, fmt.Sprintf(" %d ", st.Score), core.ColorWhite)
	}

	switch st.Status {
	case StatusIdle:
		mid := v.y + v.h/3
		drawCentered(dst, v, mid, "BAT FLAP", core.ColorViolet)
		drawCentered(dst, v, mid+2, "Space to fly", core.ColorWhite)
		drawCentered(dst, v, v.y+v.h-3, fmt.Sprintf("High Score: %d", st.Best), core.ColorGray)
	case StatusPaused:
		drawMessage(dst, v, core.ColorYellow, "PAUSED", "P to resume")
	case StatusGameOver:
		drawMessage(dst, v, core.ColorRed, "GAME OVER",
			fmt.Sprintf("Score: %d", st.Score),
			fmt.Sprintf("Best: %d", st.Best),
			"R to try again")
	}
}

// drawCentered writes text centered inside the viewport.
func drawCentered(dst *core.Screen, v viewport, y int, text string, c core.Color) {
	x := v.x + (v.w-len([]rune(text)))/2
	dst.DrawTextColored(x, y, text, c)
}

// drawMessage draws a boxed title with lines below it, centered in the viewport.
func drawMessage(dst *core.Screen, v viewport, titleColor core.Color, title string, lines ...string) {
	boxW := len(title)
	for _, l := range lines {
		boxW = core.Max(boxW, len(l))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := v.x + (v.w-boxW)/2
	boxY := v.y + (v.h-boxH)/2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, titleColor)
	for i, l := range lines {
		dst.DrawTextColored(boxX+(boxW-len(l))/2, boxY+3+i, l, core.ColorWhite)
	}
}
