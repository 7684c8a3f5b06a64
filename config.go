package wicker

import "time"

// Config tunes the window manager and the widgets it hosts.
type Config struct {
	// ScreenSize bounds window dragging and resizing. Zero disables the clamp.
	ScreenSize Vec2

	// DoubleClickThreshold is the longest gap between two clicks that still
	// counts as a double click.
	DoubleClickThreshold time.Duration

	// TypingCooldownFrames is how many idle frames a TextInput waits before
	// raising TypingFinished.
	TypingCooldownFrames int

	// CopyExpiry is how long a touched numeric cell stays eligible as the
	// source of a ctrl-drag copy.
	CopyExpiry time.Duration

	// TooltipOffset places tooltips relative to the pointer.
	TooltipOffset Vec2
	TooltipStyle  Style

	// LockOverlay is the color dimming a locked window; LockFade is how long
	// the overlay takes to fade in or out.
	LockOverlay Color
	LockFade    time.Duration
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		DoubleClickThreshold: 300 * time.Millisecond,
		TypingCooldownFrames: 30,
		CopyExpiry:           3 * time.Second,
		TooltipOffset:        Vec2{14, 14},
		TooltipStyle: Style{
			Background:  Color{0.08, 0.08, 0.1, 0.95},
			Border:      Color{0.5, 0.5, 0.55, 1},
			BorderWidth: 1,
			Text:        TextStyle{Color: ColorWhite, Padding: 4},
		},
		LockOverlay: Color{0, 0, 0, 0.45},
		LockFade:    150 * time.Millisecond,
	}
}
