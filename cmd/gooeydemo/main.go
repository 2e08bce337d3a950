// Gooeydemo opens a window with the liquid-glass menu toggle. Click the glass
// button or press Space to open and close the menu.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/phanxgames/gooey"
	"github.com/phanxgames/gooey/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults when empty)")
	watch := flag.Bool("watch", false, "reload the config file when it changes")
	scriptPath := flag.String("script", "", "JSON test script to run, exiting when done")
	debug := flag.Bool("debug", false, "log per-frame timings")
	showFPS := flag.Bool("fps", false, "show the FPS widget")
	shots := flag.String("screenshots", "screenshots", "directory for script screenshots")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	gooey.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig(*configPath, *debug)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	effect, err := gooey.NewEffect(cfg)
	if err != nil {
		log.Fatalf("failed to create effect: %v", err)
	}
	effect.ShowFPS(*showFPS)
	effect.ScreenshotDir = *shots
	effect.OnSelect = func(i int, item gooey.MenuItem) {
		gooey.Logger().Info("menu select", "index", i, "label", item.Label)
	}

	run := gooey.RunConfigFrom(cfg)

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("failed to read script: %v", err)
		}
		runner, err := gooey.LoadTestScript(data)
		if err != nil {
			log.Fatalf("failed to load script: %v", err)
		}
		effect.SetTestRunner(runner)
		run.ExitWhenScriptDone = true
	}

	if *watch {
		if *configPath == "" {
			log.Fatal("-watch needs -config")
		}
		w, err := config.NewWatcher(*configPath)
		if err != nil {
			log.Fatalf("failed to watch config: %v", err)
		}
		defer w.Close()
		run.OnUpdate = func() error {
			reload(effect, w, *configPath, *debug)
			return nil
		}
	}

	if err := gooey.Run(effect, run); err != nil {
		log.Fatal(err)
	}
}

// loadConfig reads path, or the defaults when path is empty. The -debug flag
// wins over the file.
func loadConfig(path string, debug bool) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// reload applies pending config changes without blocking the frame.
func reload(effect *gooey.Effect, w *config.Watcher, path string, debug bool) {
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return
			}
			cfg, err := loadConfig(path, debug)
			if err != nil {
				gooey.Logger().Warn("config reload failed", "err", err)
				continue
			}
			if err := effect.ApplyConfig(cfg); err != nil {
				gooey.Logger().Warn("config reload rejected", "err", err)
				continue
			}
			gooey.Logger().Info("config reloaded", "path", path)
		case err, ok := <-w.Errors:
			if ok {
				gooey.Logger().Warn("config watch", "err", err)
			}
			return
		default:
			return
		}
	}
}
