package main

import (
	"path/filepath"
	"time"

	"github.com/milk9111/grabrig/config"
	"github.com/milk9111/grabrig/ecs"
	"github.com/milk9111/grabrig/scenario"
	"github.com/milk9111/grabrig/scene"
	"go.uber.org/zap"
)

type runner struct {
	cfg     config.Config
	spec    *scenario.Spec
	scene   *scene.Scene
	watcher *scenario.Watcher
	log     *zap.Logger
}

// runHeadless simulates n ticks. With a watcher the run is paced at the
// tick rate so edits land while it is running.
func (r *runner) runHeadless(n int) error {
	dt := r.cfg.TickDuration()
	var pace *time.Ticker
	if r.watcher != nil {
		pace = time.NewTicker(dt)
		defer pace.Stop()
	}

	for i := 0; i < n; i++ {
		if pace != nil {
			<-pace.C
		}
		if err := r.step(dt.Seconds()); err != nil {
			return err
		}
	}
	r.summarize()
	return nil
}

// step applies pending file changes, ticks the scene once and logs its
// grab events.
func (r *runner) step(dt float64) error {
	r.drainWatcher()
	for _, evt := range r.scene.Tick(dt) {
		g, ok := evt.Data.(ecs.GrabEvent)
		if !ok {
			continue
		}
		r.log.Info("hand "+string(g.Kind),
			zap.Uint64("tick", r.scene.World.Tick()),
			zap.String("hand", r.scene.NameOf(g.Hand)),
			zap.String("body", r.scene.NameOf(g.Body)),
			zap.Int("holders", g.Holders),
		)
	}
	return r.scene.Check()
}

func (r *runner) drainWatcher() {
	if r.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-r.watcher.Changes:
			if !ok {
				r.watcher = nil
				return
			}
			r.apply(c)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				r.watcher = nil
				return
			}
			r.log.Warn("scenario watch", zap.Error(err))
		default:
			return
		}
	}
}

func (r *runner) apply(c scenario.Change) {
	name := filepath.Base(c.Path)
	switch c.Kind {
	case scenario.ScriptChanged:
		r.log.Info("script changed; restart to rebuild tracks", zap.String("file", name))
	case scenario.ScenarioChanged:
		spec, err := scenario.LoadScenario(name)
		if err != nil {
			r.log.Warn("reload scenario", zap.String("file", name), zap.Error(err))
			return
		}
		if err := scenario.Reconfigure(r.scene, spec, r.cfg); err != nil {
			r.log.Warn("reconfigure hands", zap.Error(err))
			return
		}
		r.spec = spec
	}
}

func (r *runner) summarize() {
	for _, b := range r.scene.Bodies() {
		p := b.Position
		r.log.Info("body",
			zap.String("name", b.Name),
			zap.Float64s("position", p[:]),
			zap.Bool("gravity", b.Gravity),
			zap.Int("holders", b.Holders),
		)
	}
	for _, h := range r.scene.Hands() {
		r.log.Info("hand",
			zap.String("name", h.Name),
			zap.Stringer("state", h.State),
			zap.String("held", h.Held),
		)
	}
}
