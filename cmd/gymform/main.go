package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jacdevv/gym-form/internal/app"
	"github.com/jacdevv/gym-form/internal/capture"
	"github.com/jacdevv/gym-form/internal/pose"
	"github.com/jacdevv/gym-form/internal/server"
	"github.com/jacdevv/gym-form/internal/squat"
	"github.com/jacdevv/gym-form/internal/store"
	"github.com/jacdevv/gym-form/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path (default ~/.gymform/gymform.db)")
	cameraID := flag.Int("camera", 0, "webcam device ID")
	mirror := flag.Bool("mirror", true, "mirror webcam frames horizontally")
	sourceFlag := flag.String("source", "", `frame source: "webcam" or a video file path (prompts when empty)`)
	motionThresh := flag.Float64("motion", 1.0, "motion threshold as percent of changed pixels")
	useTray := flag.Bool("tray", false, "run with a system tray menu")
	flag.Parse()

	fmt.Println("GymForm - Squat Form Analysis")

	st, err := openStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	source, err := chooseSource(*sourceFlag, *cameraID, *mirror)
	if err != nil {
		log.Fatalf("Failed to choose frame source: %v", err)
	}

	// Remember the camera setup for the dashboard to read back.
	if err := st.Settings().Set(store.SettingCameraID, fmt.Sprintf("%d", *cameraID)); err != nil {
		log.Printf("Failed to save camera setting: %v", err)
	}
	if err := st.Settings().Set(store.SettingMirror, fmt.Sprintf("%t", *mirror)); err != nil {
		log.Printf("Failed to save mirror setting: %v", err)
	}

	a := app.New(app.Config{
		Store:        st,
		Source:       source,
		PoseConfig:   pose.DefaultConfig(),
		MotionThresh: *motionThresh,
	})

	if err := a.LoadActiveProfile(); err != nil {
		log.Printf("Failed to load calibration profile: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start analysis pipeline: %v", err)
	}
	a.SetEnabled(true)

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Calibrator: a.Calibrator(),
		Session:    a,
		Frames:     a,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *useTray {
		runTray(a)
	} else {
		waitForExit(a)
	}

	a.Stop()

	reps, feedback := a.Summary()
	fmt.Printf("\nSession complete: %d reps\n", reps)
	if feedback != "" {
		fmt.Printf("Last feedback: %s\n", feedback)
	}
}

// runTray blocks inside the system tray event loop until the user quits.
func runTray(a *app.App) {
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnReset(a.ResetSession)
	a.SetOnRep(func(res squat.Result) {
		t.SetLastRep(res.RepCount, res.LastFeedback)
	})
	t.Run()
}

// waitForExit blocks until the user interrupts or a non-looping video source
// runs out of frames.
func waitForExit(a *app.App) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		fmt.Println("\nShutting down...")
	case <-a.Done():
	}
}

// openStore opens the SQLite database, creating the data directory on first run.
func openStore(path string) (*store.Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}

		dbDir := filepath.Join(homeDir, ".gymform")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		path = filepath.Join(dbDir, "gymform.db")
	}

	return store.New(path)
}

// chooseSource resolves the frame source from the flag, falling back to a
// numbered prompt.
func chooseSource(flagValue string, cameraID int, mirror bool) (capture.Source, error) {
	switch {
	case flagValue == "webcam":
		return capture.NewCamera(cameraID, mirror), nil
	case flagValue != "":
		return capture.NewVideoFile(flagValue, true), nil
	}

	fmt.Println("Select video source:")
	fmt.Println("  1) Webcam")
	fmt.Println("  2) videos/deep_squat.mp4")
	fmt.Println("  3) videos/parallel_squat.mp4")
	fmt.Print("Choice [1]: ")

	scanner := bufio.NewScanner(os.Stdin)
	choice := "1"
	if scanner.Scan() {
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			choice = text
		}
	}

	switch choice {
	case "1":
		return capture.NewCamera(cameraID, mirror), nil
	case "2":
		return capture.NewVideoFile("videos/deep_squat.mp4", true), nil
	case "3":
		return capture.NewVideoFile("videos/parallel_squat.mp4", true), nil
	default:
		return nil, fmt.Errorf("unknown source choice %q", choice)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.gymform/web.
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

	homeWebDir := filepath.Join(homeDir, ".gymform", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
