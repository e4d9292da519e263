package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/grabrig/config"
	"github.com/milk9111/grabrig/logging"
	"github.com/milk9111/grabrig/scenario"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (GRABRIG_* env vars override it)")
	scenarioName := flag.String("scenario", "", "scenario file in scenario/ (default from config)")
	ticks := flag.Int("ticks", 0, "ticks to simulate; 0 uses the scenario length")
	watch := flag.Bool("watch", false, "apply hand settings from scenario files as they change")
	live := flag.Bool("live", false, "open a window and add a hand driven by keyboard or gamepad")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *scenarioName != "" {
		cfg.Scenario = *scenarioName
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	spec, err := scenario.LoadScenario(cfg.Scenario)
	if err != nil {
		log.Fatal("load scenario", zap.Error(err))
	}
	s, err := scenario.Build(spec, cfg, log)
	if err != nil {
		log.Fatal("build scenario", zap.Error(err))
	}

	var watcher *scenario.Watcher
	if *watch {
		watcher, err = scenario.NewWatcher(scenario.Dir, cfg.Scenario)
		if err != nil {
			log.Fatal("watch scenarios", zap.String("dir", scenario.Dir), zap.Error(err))
		}
		defer watcher.Close()
	}

	r := &runner{cfg: cfg, spec: spec, scene: s, watcher: watcher, log: log}
	if *live {
		if err := runLive(r); err != nil {
			log.Fatal("live", zap.Error(err))
		}
		return
	}

	n := *ticks
	if n <= 0 {
		n = spec.Ticks
	}
	if err := r.runHeadless(n); err != nil {
		log.Error("run failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}
