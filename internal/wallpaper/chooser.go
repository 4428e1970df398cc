package wallpaper

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"wallpick/internal/errors"
)

// ChooseMonitor picks a monitor for a one-shot apply. A single monitor is
// returned directly; otherwise a numbered menu is written to out and the
// answer read from in.
func ChooseMonitor(in io.Reader, out io.Writer, monitors []string) (string, error) {
	switch len(monitors) {
	case 0:
		return "", errors.NewCompositorError("wallpick", "no monitors available", "", errors.NoMonitors, nil)
	case 1:
		return monitors[0], nil
	}

	fmt.Fprintln(out, "Choose monitor to change wallpaper:")
	for i, m := range monitors {
		fmt.Fprintf(out, "[%d] %s\n", i+1, m)
	}
	fmt.Fprint(out, "==> ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "read monitor choice")
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return "", errors.Wrap(err, "Expected number input")
	}
	if n < 1 || n > len(monitors) {
		return "", errors.Newf("Invalid input, expected number between 1 and %d", len(monitors))
	}
	return monitors[n-1], nil
}
