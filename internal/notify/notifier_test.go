package notify

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/adikms/kinetrack/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "kinetrack-notify-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestNotifier_ActionChanged(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	tmpDir, err := os.MkdirTemp("", "kinetrack-notify-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	// The command records its invocation by touching a marker file.
	markerPath := filepath.Join(tmpDir, "fired")
	scriptContent := `#!/bin/sh
cat > ` + markerPath + `
echo '{"success":true}'
`
	scriptPath := filepath.Join(tmpDir, "alert.sh")
	if err := os.WriteFile(scriptPath, []byte(scriptContent), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	s := newTestStore(t)
	rule := &store.AlertRule{
		ID:        "rule-1",
		ClassName: "person",
		Action:    "running",
		Command:   scriptPath,
		Enabled:   true,
	}
	if err := s.AlertRules().Create(rule); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	n := New(s.AlertRules(), 5000)
	if err := n.Reload(); err != nil {
		t.Fatalf("failed to reload rules: %v", err)
	}

	// A non-matching event must not fire the rule
	n.ActionChanged(Event{TrackID: "track-a", ClassName: "person", Action: "walking"})
	time.Sleep(200 * time.Millisecond)
	if _, err := os.Stat(markerPath); !os.IsNotExist(err) {
		t.Fatal("rule should not fire for a non-matching action")
	}

	// A matching event fires the rule
	n.ActionChanged(Event{TrackID: "track-a", ClassName: "person", Action: "running", SpeedKMH: 18})

	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, err := os.Stat(markerPath); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("rule did not fire within deadline")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestNotifier_Reload_PicksUpDisabled(t *testing.T) {
	s := newTestStore(t)
	rule := &store.AlertRule{
		ID:        "rule-1",
		ClassName: "person",
		Action:    "running",
		Command:   "/bin/true",
		Enabled:   true,
	}
	if err := s.AlertRules().Create(rule); err != nil {
		t.Fatalf("failed to create rule: %v", err)
	}

	n := New(s.AlertRules(), 0)
	if err := n.Reload(); err != nil {
		t.Fatalf("failed to reload rules: %v", err)
	}

	n.mu.RLock()
	count := len(n.cached)
	n.mu.RUnlock()
	if count != 1 {
		t.Fatalf("expected 1 cached rule, got %d", count)
	}

	rule.Enabled = false
	if err := s.AlertRules().Update(rule); err != nil {
		t.Fatalf("failed to update rule: %v", err)
	}
	if err := n.Reload(); err != nil {
		t.Fatalf("failed to reload rules: %v", err)
	}

	n.mu.RLock()
	count = len(n.cached)
	n.mu.RUnlock()
	if count != 0 {
		t.Fatalf("expected 0 cached rules after disable, got %d", count)
	}
}
