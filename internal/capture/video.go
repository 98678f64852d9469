package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// ErrEndOfVideo is returned by a non-looping file source once the last
// frame has been read.
var ErrEndOfVideo = errors.New("end of video file")

// fileSource plays back a recorded video file. With loop enabled it rewinds
// to the first frame on EOF, matching how sample squat clips are reviewed.
type fileSource struct {
	path    string
	loop    bool
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
	fps     int
}

// NewVideoFile creates a Source reading frames from the video at path.
func NewVideoFile(path string, loop bool) Source {
	return &fileSource{
		path: path,
		loop: loop,
		fps:  DefaultFPS,
	}
}

// Open opens the video file for reading.
func (f *fileSource) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.running {
		return nil
	}

	capture, err := gocv.VideoCaptureFile(f.path)
	if err != nil {
		return err
	}

	if nativeFPS := capture.Get(gocv.VideoCaptureFPS); nativeFPS > 0 {
		f.fps = int(nativeFPS)
	}

	f.capture = capture
	f.running = true

	return nil
}

// Close closes the video file and releases resources.
func (f *fileSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running || f.capture == nil {
		f.running = false
		return nil
	}

	err := f.capture.Close()
	f.capture = nil
	f.running = false

	return err
}

// ReadFrame reads the next frame from the file. On EOF a looping source
// rewinds and continues; otherwise ErrEndOfVideo is returned.
// The caller is responsible for closing the returned Mat.
func (f *fileSource) ReadFrame() (*gocv.Mat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.running || f.capture == nil {
		return nil, ErrSourceNotOpen
	}

	mat := gocv.NewMat()
	if ok := f.capture.Read(&mat); !ok || mat.Empty() {
		if !f.loop {
			mat.Close()
			return nil, ErrEndOfVideo
		}

		// Rewind and try once more; a failure here means the file itself
		// is unreadable, not merely exhausted.
		f.capture.Set(gocv.VideoCapturePosFrames, 0)
		if ok := f.capture.Read(&mat); !ok || mat.Empty() {
			mat.Close()
			return nil, errors.New("failed to read frame after rewind")
		}
	}

	return &mat, nil
}

// SetFPS sets the playback pacing hint. Values <= 0 are ignored.
func (f *fileSource) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fps = fps
}

// FPS returns the playback frame rate, the file's native rate when known.
func (f *fileSource) FPS() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fps
}

// IsOpen returns true if the file is currently open.
func (f *fileSource) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}
