package capture

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

func TestMotionGate_FirstFrameIsBaseline(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	detected, percent := gate.Detect(&frame)
	if detected {
		t.Error("first frame should establish the baseline, not report motion")
	}
	if percent != 0 {
		t.Errorf("first frame change percent = %v, want 0", percent)
	}
}

func TestMotionGate_StaticScene(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	gate.Detect(&frame)
	detected, _ := gate.Detect(&frame)
	if detected {
		t.Error("identical frames should not report motion")
	}
}

func TestMotionGate_DetectsChange(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	dark := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer dark.Close()

	bright := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer bright.Close()
	gocv.Rectangle(&bright, image.Rect(0, 0, 640, 480), color.RGBA{255, 255, 255, 255}, -1)

	gate.Detect(&dark)
	detected, percent := gate.Detect(&bright)
	if !detected {
		t.Errorf("full-frame change not detected (change percent %v)", percent)
	}
}

func TestMotionGate_NilAndEmptyFrames(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	if detected, _ := gate.Detect(nil); detected {
		t.Error("nil frame reported motion")
	}

	empty := gocv.NewMat()
	defer empty.Close()
	if detected, _ := gate.Detect(&empty); detected {
		t.Error("empty frame reported motion")
	}
}

func TestMotionGate_Reset(t *testing.T) {
	gate := NewMotionGate(1.0)
	defer gate.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	gate.Detect(&frame)
	gate.Reset()

	// After a reset the next frame is a baseline again.
	detected, _ := gate.Detect(&frame)
	if detected {
		t.Error("frame after Reset should establish a new baseline")
	}
}
