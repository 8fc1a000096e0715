// Package scale decides how large an image should be displayed.
package scale

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned for a Mode outside the known set.
var ErrInvalidMode = errors.New("invalid scale mode")

type Mode int

const (
	// Normal shows images at full size unless they do not fit the monitor.
	Normal Mode = iota
	// FullSize always shows images at their true resolution.
	FullSize
	// FullScreen scales up or down so the image fills the display surface.
	FullScreen
	// ScreenRatio is Normal followed by a user ratio.
	ScreenRatio
	// ImageRatio applies a user ratio to the true size.
	ImageRatio
)

// Slop thresholds, in summed pixels of width and height difference.
const (
	NormalSlop     = 5
	FullScreenSlop = 20
)

var modeNames = map[Mode]string{
	Normal:      "normal",
	FullSize:    "fullsize",
	FullScreen:  "fullscreen",
	ScreenRatio: "screenratio",
	ImageRatio:  "imageratio",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// ParseMode converts a mode name, case insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Set and Type make Mode usable as a command line flag value.
func (m *Mode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}

func (m *Mode) Type() string {
	return "mode"
}

type Size struct {
	W, H int
}

func (s Size) Swap() Size {
	return Size{W: s.H, H: s.W}
}

// Larger reports whether s exceeds o on either axis.
func (s Size) Larger(o Size) bool {
	return s.W > o.W || s.H > o.H
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// distance is the L1 distance between two sizes.
func distance(a, b Size) int {
	return abs(a.W-b.W) + abs(a.H-b.H)
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Input carries everything a scale decision depends on. True and Current are
// expressed in the orientation the image will have once displayed.
type Input struct {
	Mode  Mode
	Ratio float64

	True    Size
	Current Size

	Monitor Size
	// Window is the active window size, used instead of Monitor for
	// FullScreen while in presentation mode.
	Window       Size
	Presentation bool
}

// Fit scales s uniformly so that it just fits within max: the axis needing the
// larger shrink (or the smaller growth) matches max exactly.
func Fit(s, max Size) Size {
	xratio := float64(max.W) / float64(s.W)
	yratio := float64(max.H) / float64(s.H)
	if xratio <= yratio {
		return Size{W: max.W, H: int(xratio * float64(s.H))}
	}
	return Size{W: int(yratio * float64(s.W)), H: max.H}
}

func mul(s Size, ratio float64) Size {
	return Size{W: int(float64(s.W) * ratio), H: int(float64(s.H) * ratio)}
}

// snap returns cur when target is within slop of it.
func snap(target, cur Size, slop int) Size {
	if distance(target, cur) < slop {
		return cur
	}
	return target
}

// Target computes the size the image should be displayed at.
func Target(in Input) (Size, error) {
	switch in.Mode {
	case FullSize:
		return in.True, nil

	case Normal, ScreenRatio:
		target := in.True
		if target.Larger(in.Monitor) {
			target = Fit(target, in.Monitor)
		}
		target = mul(target, in.Ratio)
		return snap(target, in.Current, NormalSlop), nil

	case ImageRatio:
		return snap(mul(in.True, in.Ratio), in.Current, NormalSlop), nil

	case FullScreen:
		screen := in.Monitor
		if in.Presentation && in.Window.W > 0 && in.Window.H > 0 {
			screen = in.Window
		}
		// being within FullScreenSlop of the screen does not skip the scale
		return Fit(in.True, screen), nil
	}
	return in.Current, fmt.Errorf("%w: %d", ErrInvalidMode, int(in.Mode))
}
