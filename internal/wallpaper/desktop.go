package wallpaper

import "os"

// Desktop is the compositor wallpick is running under.
type Desktop int

const (
	Unknown Desktop = iota
	Hyprland
)

func (d Desktop) String() string {
	if d == Hyprland {
		return "Hyprland"
	}
	return "unknown"
}

// desktopVars are checked in order; the first recognised value wins.
var desktopVars = []string{"CURRENT_DESKTOP", "XDG_SESSION_DESKTOP", "XDG_CURRENT_DESKTOP"}

// DetectDesktop inspects the session environment through getenv. A nil
// getenv means os.Getenv.
func DetectDesktop(getenv func(string) string) Desktop {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range desktopVars {
		if d := desktopFromName(getenv(name)); d != Unknown {
			return d
		}
	}
	return Unknown
}

func desktopFromName(name string) Desktop {
	switch name {
	case "Hyprland":
		return Hyprland
	default:
		return Unknown
	}
}
