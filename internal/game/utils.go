package game

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/iburimskiy/stripe-glitch/internal/sketch"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// framesToDuration converts a frame count at tps ticks per second.
func framesToDuration(frames, tps int) time.Duration {
	if tps <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(tps)
}

func statusLine(phase sketch.Phase, done, total int, seed uint64, elapsed time.Duration, paused bool) string {
	var b strings.Builder
	if phase == sketch.Drawing {
		fmt.Fprintf(&b, "Drawing %d/%d", done, total)
	} else {
		fmt.Fprintf(&b, "Glitch (%s)", phase)
	}
	fmt.Fprintf(&b, " | %s | seed %d", formatDuration(elapsed), seed)
	if paused {
		b.WriteString(" | Paused")
	}
	b.WriteString("\nR: regenerate  S: save  Space: pause  H: hide  Esc/Q: quit")
	return b.String()
}

// pngPath gives the chosen file a .png extension, replacing any other.
func pngPath(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".png") {
		return path
	}
	return strings.TrimSuffix(path, ext) + ".png"
}

// clicked reports whether a mouse release completes a click on the button:
// the press started inside it and the cursor is still over it.
func clicked(pressedInside, hovered, justReleased bool) bool {
	return justReleased && pressedInside && hovered
}
