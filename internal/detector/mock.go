package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It plays back a scripted sequence of per-frame detection lists,
// letting tests drive the tracking engine without a model or camera.
type MockDetector struct {
	script [][]Detection
	index  int
	loop   bool
	err    error
	mu     sync.Mutex
}

// NewMockDetector creates a new MockDetector with an empty script.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetScript sets the per-frame detection lists returned by successive
// Detect calls and restarts playback from the beginning.
func (m *MockDetector) SetScript(script [][]Detection, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = script
	m.loop = loop
	m.index = 0
}

// SetDetections makes every Detect call return the same detection list.
func (m *MockDetector) SetDetections(detections []Detection) {
	m.SetScript([][]Detection{detections}, true)
}

// SetError sets the error that will be returned by Detect.
// Pass nil to clear a previously set error.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted detection list, or the configured error.
// Once a non-looping script is exhausted, Detect returns empty lists.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	if len(m.script) == 0 {
		return nil, nil
	}

	if m.index >= len(m.script) {
		if !m.loop {
			return nil, nil
		}
		m.index = 0
	}

	detections := m.script[m.index]
	m.index++

	// Copy so callers cannot mutate the script.
	out := make([]Detection, len(detections))
	copy(out, detections)
	return out, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}
