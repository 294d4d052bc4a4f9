//go:build unix

package askcii

import "golang.org/x/sys/unix"

// TerminalSize returns the columns and lines of the terminal attached to fd.
func TerminalSize(fd int) (cols, lines int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1, err
	}
	return int(ws.Col), int(ws.Row), nil
}
