// Package detector provides object detection interfaces and types for the Kinetrack motion tracking system.
package detector

import (
	"math"

	"gocv.io/x/gocv"
)

// BoundingBox describes an object's location in a frame, in pixel
// coordinates with the origin at the top-left corner.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the center point of the bounding box.
func (b BoundingBox) Center() (x, y float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Detection represents a single detected object in a frame.
type Detection struct {
	Box        BoundingBox `json:"boundingBox"`
	ClassName  string      `json:"className"`
	Confidence float64     `json:"confidenceScore"`
}

// Valid reports whether the detection carries a usable bounding box.
// Detections with NaN/Inf coordinates or negative dimensions come from
// a misbehaving detector and must be skipped, not propagated.
func (d Detection) Valid() bool {
	for _, v := range []float64{d.Box.X, d.Box.Y, d.Box.Width, d.Box.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	if d.Box.Width < 0 || d.Box.Height < 0 {
		return false
	}
	return d.ClassName != ""
}

// Detector defines the interface for object detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the objects found in it.
	// Returns an empty slice if nothing is detected.
	Detect(frame *gocv.Mat) ([]Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for object detection.
type Config struct {
	// ModelPath is the path to the ONNX detection model.
	ModelPath string

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// NMSThreshold is the non-maximum-suppression overlap threshold (0.0-1.0).
	NMSThreshold float64

	// InputWidth and InputHeight are the network input dimensions.
	InputWidth  int
	InputHeight int
}

// DefaultConfig returns a Config with sensible default values for a
// YOLOv8-style nano model.
func DefaultConfig() Config {
	return Config{
		ModelPath:     "models/yolov8n.onnx",
		MinConfidence: 0.5,
		NMSThreshold:  0.45,
		InputWidth:    640,
		InputHeight:   640,
	}
}
