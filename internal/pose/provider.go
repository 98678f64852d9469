package pose

import "gocv.io/x/gocv"

// Provider defines the interface for pose extraction implementations.
type Provider interface {
	// Detect analyzes a video frame and returns the tracked keypoints.
	// A nil KeyPoints with a nil error means no pose was found in the frame;
	// callers must treat that as missing data, not as a failure.
	Detect(frame *gocv.Mat) (*KeyPoints, error)

	// Close releases any resources held by the provider.
	Close() error
}

// Config holds configuration options for pose detection.
type Config struct {
	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// ModelComplexity selects the pose model variant (0=lite, 1=full, 2=heavy).
	ModelComplexity int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		ModelComplexity: 1,
	}
}
