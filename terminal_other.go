//go:build !unix

package askcii

import "errors"

func TerminalSize(fd int) (cols, lines int, err error) {
	return -1, -1, errors.New("terminal size is not supported on this platform")
}
