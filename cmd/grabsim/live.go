package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/grabrig/gamepad"
	"github.com/milk9111/grabrig/grab"
	"github.com/milk9111/grabrig/scene"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	pixelsPerM   = 300
	liveHand     = "player"
)

type liveGame struct {
	r         *runner
	dt        float64
	tracker   *gamepad.Tracker
	clipboard bool
	err       error
}

func runLive(r *runner) error {
	start := mgl64.Vec3{0, 1, 0.3}
	tracker := gamepad.NewTracker(start)
	_, _, err := r.scene.AddHand(scene.HandOptions{
		Name:          liveHand,
		Config:        r.cfg.Hand,
		TriggerRadius: 0.1,
		Pose:          grab.PoseAt(start, mgl64.QuatIdent()),
		Tracker:       tracker,
		Grip:          gamepad.Grip(r.cfg.Hand),
	})
	if err != nil {
		return err
	}

	g := &liveGame{r: r, dt: r.cfg.TickDuration().Seconds(), tracker: tracker}
	if err := clipboard.Init(); err != nil {
		r.log.Warn("clipboard unavailable", zap.Error(err))
	} else {
		g.clipboard = true
	}

	ebiten.SetTPS(r.cfg.TickRate)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("grabsim - " + r.spec.Name)
	return ebiten.RunGame(g)
}

func (g *liveGame) Update() error {
	if g.err != nil {
		return g.err
	}
	if err := g.r.step(g.dt); err != nil {
		g.r.log.Error("scene check", zap.Error(err))
		g.err = err
	}
	if g.clipboard && inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.copyKeyframe()
	}
	return nil
}

// copyKeyframe puts the live hand's pose on the clipboard as a scenario
// keyframe line.
func (g *liveGame) copyKeyframe() {
	for _, h := range g.r.scene.Hands() {
		if h.Name != liveHand {
			continue
		}
		p := h.Position
		grip := 0
		if h.State == grab.StateHolding {
			grip = 1
		}
		yaw, pitch := g.tracker.Angles()
		line := fmt.Sprintf("- {tick: %d, position: [%.3f, %.3f, %.3f], euler: [%.1f, %.1f, 0], grip: %d}\n",
			g.r.scene.World.Tick()-1, p[0], p[1], p[2], pitch, yaw, grip)
		clipboard.Write(clipboard.FmtText, []byte(line))
		g.r.log.Info("keyframe copied", zap.String("keyframe", strings.TrimSpace(line)))
		return
	}
}

// toScreen projects the XY plane, Y up, with the origin at the bottom
// centre of the window.
func toScreen(p mgl64.Vec3) (float32, float32) {
	return float32(screenWidth/2 + p.X()*pixelsPerM), float32(screenHeight - 40 - p.Y()*pixelsPerM)
}

func (g *liveGame) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	floorY := float32(screenHeight - 40)
	if g.r.spec.FloorY != nil {
		_, floorY = toScreen(mgl64.Vec3{0, *g.r.spec.FloorY, 0})
	}
	vector.StrokeLine(screen, 0, floorY, screenWidth, floorY, 2, colornames.Lightgrey, false)

	for _, b := range g.r.scene.Bodies() {
		x, y := toScreen(b.Position)
		var clr color.Color = colornames.Orange
		if b.Holders > 0 {
			clr = colornames.Limegreen
		}
		radius := float32(0.05 * pixelsPerM)
		if body, ok := g.r.scene.Body(b.Name); ok {
			radius = float32(body.Radius() * pixelsPerM)
		}
		vector.FillCircle(screen, x, y, radius, clr, true)
	}

	var hud strings.Builder
	fmt.Fprintf(&hud, "tick %d  FPS %.1f  [space/trigger] grip  [K] copy keyframe\n", g.r.scene.World.Tick(), ebiten.ActualFPS())
	for _, h := range g.r.scene.Hands() {
		x, y := toScreen(h.Position)
		clr := colornames.Skyblue
		if h.State == grab.StateHolding {
			clr = colornames.Crimson
		}
		vector.StrokeCircle(screen, x, y, 0.1*pixelsPerM, 2, clr, true)
		fmt.Fprintf(&hud, "%-8s %-8s held=%s\n", h.Name, h.State, h.Held)
	}
	ebitenutil.DebugPrint(screen, hud.String())
}

func (g *liveGame) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}
