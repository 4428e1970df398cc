package protocol

import (
	"fmt"

	"wallpick/internal/errors"

	"github.com/muesli/termenv"
)

// Kind selects how previews are drawn.
type Kind int

const (
	Halfblocks Kind = iota
	ASCII
)

func (k Kind) String() string {
	switch k {
	case Halfblocks:
		return "halfblocks"
	case ASCII:
		return "ascii"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Picker chooses a Kind from a user setting and what the terminal supports.
type Picker struct {
	Profile termenv.Profile
}

// NewPicker reads the color profile of stdout, honoring NO_COLOR and
// CLICOLOR_FORCE.
func NewPicker() *Picker {
	return &Picker{Profile: termenv.EnvColorProfile()}
}

// Pick resolves setting, which is one of auto, halfblocks or ascii. auto
// picks halfblocks unless the terminal has no color.
func (p *Picker) Pick(setting string) (Kind, error) {
	switch setting {
	case "", "auto":
		if p.Profile == termenv.Ascii {
			return ASCII, nil
		}
		return Halfblocks, nil
	case "halfblocks":
		return Halfblocks, nil
	case "ascii":
		return ASCII, nil
	default:
		return Halfblocks, errors.NewConfigError("unknown preview protocol "+setting, "preview.protocol", errors.InvalidConfig, nil)
	}
}
