package editor

import "github.com/menta2k/circlecrop/pkg/crop"

// Mode names the interaction state
type Mode int

const (
	ModeIdle Mode = iota
	ModeSelecting
	ModeDragging
	ModeResizing
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSelecting:
		return "selecting"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// state is the tagged variant behind Mode; each variant carries only the
// data its gesture needs.
type state interface {
	mode() Mode
}

type idle struct{}

func (idle) mode() Mode { return ModeIdle }

// selecting tracks a rubber-band square from anchor to the current pointer
type selecting struct {
	anchorX, anchorY float64
	curX, curY       float64
}

func (*selecting) mode() Mode { return ModeSelecting }

// dragging moves target by incremental pointer deltas
type dragging struct {
	target           *crop.Region
	anchorX, anchorY float64
}

func (*dragging) mode() Mode { return ModeDragging }

type resizing struct {
	target *crop.Region
}

func (*resizing) mode() Mode { return ModeResizing }
