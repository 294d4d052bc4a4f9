package askcii

import (
	"io"
	"os"
)

// DefaultOutputPath is overwritten on every run.
const DefaultOutputPath = "ascii_output.txt"

// Sink receives finished art.
type Sink interface {
	Deliver(art Art) error
}

// FileSink shows art on Display and saves it to Path.
type FileSink struct {
	Path    string
	Display io.Writer // Usually os.Stdout; skipped when nil
}

func NewFileSink(path string, display io.Writer) *FileSink {
	if path == "" {
		path = DefaultOutputPath
	}
	return &FileSink{Path: path, Display: display}
}

func (s *FileSink) Deliver(art Art) error {
	text := art.String()
	if s.Display != nil {
		if _, err := io.WriteString(s.Display, text); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, []byte(text), 0644)
}
