// Package display opens rendered figures in the platform's default viewer.
//
// It backs the immediate-display mode of pipeline.Visualize and the
// `forcegraph show` command. The bytes are written to a temporary file,
// which is then opened with xdg-open (Linux, BSD), open (macOS), or
// rundll32 (Windows). Tests inject their own [Opener].
package display
