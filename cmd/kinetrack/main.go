package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adikms/kinetrack/internal/engine"
	"github.com/adikms/kinetrack/internal/metrics"
	"github.com/adikms/kinetrack/internal/notify"
	"github.com/adikms/kinetrack/internal/server"
	"github.com/adikms/kinetrack/internal/store"
	"github.com/adikms/kinetrack/internal/track"
	"github.com/adikms/kinetrack/internal/tray"
)

const serverAddr = ":8080"

func main() {
	fmt.Println("Kinetrack - Object Tracking and Kinematics")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".kinetrack")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "kinetrack.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	trackCfg := loadTrackConfig(st)

	m := metrics.New()

	notifier := notify.New(st.AlertRules(), notify.DefaultTimeoutMs)
	if err := notifier.Reload(); err != nil {
		log.Printf("Failed to load alert rules: %v", err)
	}

	eng := engine.New(engine.Config{
		Store:    st,
		Metrics:  m,
		Notifier: notifier,
		Track:    trackCfg,
	})

	if err := eng.Start(); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Engine:    eng,
		Metrics:   m,
		Notifier:  notifier,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", serverAddr)
		if err := srv.ListenAndServe(serverAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main thread until quit
	tr := tray.New()
	tr.OnToggle(func(enabled bool) {
		eng.SetEnabled(enabled)
	})
	tr.OnDashboard(func() {
		log.Printf("Dashboard: http://localhost%s/", serverAddr)
	})
	tr.OnQuit(func() {
		eng.Stop()
	})

	eng.Subscribe(func(objects []track.Object) {
		tr.SetTrackCount(len(objects))
		for i := len(objects) - 1; i >= 0; i-- {
			if objects[i].Matched {
				tr.SetLastAction(objects[i].ClassName, string(objects[i].Action))
				break
			}
		}
	})

	tr.Run()
}

// loadTrackConfig applies persisted setting overrides on top of the default
// tracking configuration. Unknown or malformed values are ignored.
func loadTrackConfig(st *store.Store) track.Config {
	cfg := track.DefaultConfig()
	settings := st.Settings()

	if v, ok := intSetting(settings, "detection_interval_ms"); ok && v > 0 {
		cfg.DetectionIntervalMs = v
	}
	if v, ok := intSetting(settings, "object_timeout_ms"); ok && v > 0 {
		cfg.ObjectTimeoutMs = int64(v)
	}
	if v, ok := floatSetting(settings, "association_gate_px"); ok && v > 0 {
		cfg.AssociationGatePx = v
	}
	if v, ok := floatSetting(settings, "pixel_to_meter"); ok && v > 0 {
		cfg.PixelToMeter = v
	}
	if v, ok := floatSetting(settings, "max_speed_kmh"); ok && v > 0 {
		cfg.MaxSpeedKMH = v
	}

	return cfg
}

func intSetting(settings *store.SettingsRepository, key string) (int, bool) {
	raw, err := settings.Get(key)
	if err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Ignoring setting %s=%q: %v", key, raw, err)
		return 0, false
	}
	return v, true
}

func floatSetting(settings *store.SettingsRepository, key string) (float64, bool) {
	raw, err := settings.Get(key)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("Ignoring setting %s=%q: %v", key, raw, err)
		return 0, false
	}
	return v, true
}

// findWebDir searches for the web directory in common locations.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".kinetrack", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
