package display

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Opener opens a file in an external viewer.
type Opener func(ctx context.Context, path string) error

// Viewer shows rendered artifacts by writing them to a temporary file and
// handing that file to an Opener.
type Viewer struct {
	// Dir is where temporary files are written. Empty means os.TempDir().
	Dir string
	// Open launches the viewer. Nil means SystemOpener.
	Open Opener
}

// Show writes data to a temporary file with the given extension (for
// example "png" or ".html") and opens it. It returns the file path; the
// file is left in place for the viewer to read.
func (v Viewer) Show(ctx context.Context, data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("nothing to display")
	}
	ext = strings.TrimPrefix(ext, ".")

	f, err := os.CreateTemp(v.Dir, "forcegraph-*."+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", f.Name(), err)
	}

	open := v.Open
	if open == nil {
		open = SystemOpener
	}
	if err := open(ctx, f.Name()); err != nil {
		return f.Name(), fmt.Errorf("open %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}

// Show displays data with the default Viewer.
func Show(ctx context.Context, data []byte, ext string) (string, error) {
	return Viewer{}.Show(ctx, data, ext)
}

// SystemOpener opens path with the platform's default application.
// The viewer is started in the background; SystemOpener does not wait
// for it to exit.
func SystemOpener(ctx context.Context, path string) error {
	name, args := openCommand(runtime.GOOS, path)
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}
