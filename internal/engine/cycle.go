package engine

import (
	"log"
	"time"

	"github.com/adikms/kinetrack/internal/detector"
	"github.com/adikms/kinetrack/internal/notify"
	"github.com/adikms/kinetrack/internal/store"
	"github.com/adikms/kinetrack/internal/track"
)

// runLoop is the main cycle loop. Each tick it reads a frame, runs the
// detector and advances the track set. A cycle that runs longer than the
// tick interval simply causes the next tick to be dropped, so cycles never
// overlap and the track set is only ever advanced from this goroutine.
func (e *Engine) runLoop(stopCh chan struct{}, intervalMs int) {
	interval := time.Duration(intervalMs) * time.Millisecond

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !e.IsEnabled() {
				continue
			}

			started := time.Now()
			e.runCycle(stopCh)

			if e.config.Metrics != nil {
				e.config.Metrics.CyclesRun.Add(1)
				if time.Since(started) > interval {
					e.config.Metrics.CycleOverruns.Add(1)
				}
			}
		}
	}
}

// runCycle performs a single capture-detect-track cycle.
func (e *Engine) runCycle(stopCh chan struct{}) {
	frame, err := e.camera.ReadFrame()
	if err != nil {
		log.Printf("Error reading frame: %v", err)
		if e.config.Metrics != nil {
			e.config.Metrics.FrameErrors.Add(1)
		}
		return
	}

	// When gating is on and the scene is still, skip the detector but keep
	// advancing the track set so coasting tracks still time out.
	var detections []detector.Detection
	runDetector := true
	if e.config.MotionGate {
		if moved, _ := e.motion.Detect(frame); !moved {
			runDetector = false
		}
	}

	if runDetector {
		detections, err = e.Detector().Detect(frame)
		if err != nil {
			frame.Close()
			log.Printf("Error detecting objects: %v", err)
			if e.config.Metrics != nil {
				e.config.Metrics.DetectorErrors.Add(1)
			}
			return
		}
	}
	frame.Close()

	now := time.Now().UnixMilli()

	e.mu.Lock()
	objects := track.AdvanceCycle(e.config.Track, e.snapshot, detections, now)
	e.snapshot = objects

	// Collect action transitions and drop state for expired tracks
	transitions := e.collectTransitionsLocked(objects)

	sessionID := e.sessionID
	subscribers := make([]func([]track.Object), len(e.subscribers))
	copy(subscribers, e.subscribers)
	e.mu.Unlock()

	if e.config.Metrics != nil {
		e.config.Metrics.DetectionsSeen.Add(uint64(len(detections)))
		e.config.Metrics.TracksActive.Store(uint64(len(objects)))
	}

	e.recordTransitions(sessionID, transitions, now)

	// Don't publish a snapshot once the engine has been stopped
	select {
	case <-stopCh:
		return
	default:
	}

	published := make([]track.Object, len(objects))
	copy(published, objects)
	for _, fn := range subscribers {
		fn(published)
	}
}

// collectTransitionsLocked compares the new track set against the previous
// per-track actions and returns the objects whose action changed. New tracks
// count as a transition into their first action. Caller must hold e.mu.
func (e *Engine) collectTransitionsLocked(objects []track.Object) []track.Object {
	var transitions []track.Object

	seen := make(map[string]bool, len(objects))
	for _, obj := range objects {
		seen[obj.ID] = true

		prev, known := e.lastAction[obj.ID]
		if !known && e.config.Metrics != nil {
			e.config.Metrics.TracksCreated.Add(1)
		}
		if !known || prev != obj.Action {
			e.lastAction[obj.ID] = obj.Action
			transitions = append(transitions, obj)
		}
	}

	for id := range e.lastAction {
		if !seen[id] {
			delete(e.lastAction, id)
		}
	}

	return transitions
}

// recordTransitions persists action transitions and hands them to the
// notifier for alert dispatch.
func (e *Engine) recordTransitions(sessionID string, transitions []track.Object, now int64) {
	for _, obj := range transitions {
		x, y := obj.Box.Center()

		if e.config.Store != nil && sessionID != "" {
			ev := &store.TrackEvent{
				SessionID: sessionID,
				TrackID:   obj.ID,
				ClassName: obj.ClassName,
				Action:    string(obj.Action),
				SpeedKMH:  obj.Speed,
				X:         x,
				Y:         y,
				AtMs:      now,
			}
			if err := e.config.Store.TrackEvents().Record(ev); err != nil {
				log.Printf("Failed to record track event: %v", err)
			} else if e.config.Metrics != nil {
				e.config.Metrics.EventsRecorded.Add(1)
			}
		}

		if e.config.Notifier != nil {
			e.config.Notifier.ActionChanged(notify.Event{
				TrackID:   obj.ID,
				ClassName: obj.ClassName,
				Action:    string(obj.Action),
				SpeedKMH:  obj.Speed,
				X:         x,
				Y:         y,
				AtMs:      now,
			})
		}
	}
}
