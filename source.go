package askcii

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Kind identifies where an image comes from.
type Kind int

const (
	KindNone Kind = iota
	KindURL
	KindPath
	KindPrompt
)

func (k Kind) String() string {
	switch k {
	case KindURL:
		return "url"
	case KindPath:
		return "path"
	case KindPrompt:
		return "prompt"
	}
	return "none"
}

// Descriptor tells a Source which image to acquire.
type Descriptor struct {
	Kind     Kind
	Location string // URL or file path
	Prompt   string
	Model    string // Diffusion model identifier
	Steps    int    // Inference steps
}

// ParseDescriptor classifies s as a URL when it has both a scheme and a
// host, and as a file path otherwise.
func ParseDescriptor(s string) Descriptor {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		return Descriptor{Kind: KindURL, Location: s}
	}
	return Descriptor{Kind: KindPath, Location: s}
}

// PromptDescriptor describes an image generated from prompt.
func PromptDescriptor(prompt, model string, steps int) Descriptor {
	return Descriptor{Kind: KindPrompt, Prompt: prompt, Model: model, Steps: steps}
}

func (d Descriptor) String() string {
	if d.Kind == KindPrompt {
		return d.Prompt
	}
	return d.Location
}

// Source acquires a decoded image. Errors returned by a Source are always
// *AcquisitionError values.
type Source interface {
	Acquire(ctx context.Context, d Descriptor) (image.Image, error)
}

// HTTPSource downloads images over HTTP(S).
type HTTPSource struct {
	Client *http.Client // http.DefaultClient when nil
}

func (s *HTTPSource) Acquire(ctx context.Context, d Descriptor) (image.Image, error) {
	body, err := s.open(ctx, d.Location)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return decodeFrom(body, d.Location)
}

func (s *HTTPSource) open(ctx context.Context, location string) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, &AcquisitionError{Kind: FetchError, Target: location, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &AcquisitionError{Kind: FetchError, Target: location, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &AcquisitionError{Kind: FetchError, Target: location, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return resp.Body, nil
}

// FileSource reads images from the local file system.
type FileSource struct{}

func (s FileSource) Acquire(ctx context.Context, d Descriptor) (image.Image, error) {
	file, err := s.open(d.Location)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return decodeFrom(file, d.Location)
}

func (FileSource) open(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &AcquisitionError{Kind: FetchError, Target: path, Err: err}
	}
	if info.IsDir() {
		return nil, &AcquisitionError{Kind: FetchError, Target: path, Err: errors.New("is a directory")}
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, &AcquisitionError{Kind: FetchError, Target: path, Err: err}
	}
	return file, nil
}

func decodeFrom(r io.Reader, target string) (image.Image, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, &AcquisitionError{Kind: DecodeError, Target: target, Err: err}
	}
	return img, nil
}

// Sources dispatches each Descriptor to the Source for its Kind.
type Sources struct {
	URL    Source
	Path   Source
	Prompt Source
}

// NewSources wires the HTTP, file and generation sources. client is shared by
// the URL and prompt sources.
func NewSources(client *http.Client, gen *GenerationSource) Sources {
	if gen.Client == nil {
		gen.Client = client
	}
	return Sources{
		URL:    &HTTPSource{Client: client},
		Path:   FileSource{},
		Prompt: gen,
	}
}

func (s Sources) Acquire(ctx context.Context, d Descriptor) (image.Image, error) {
	var src Source
	switch d.Kind {
	case KindURL:
		src = s.URL
	case KindPath:
		src = s.Path
	case KindPrompt:
		src = s.Prompt
	}
	if src == nil {
		kind := FetchError
		if d.Kind == KindPrompt {
			kind = GenerationError
		}
		return nil, &AcquisitionError{Kind: kind, Target: d.String(), Err: fmt.Errorf("no source for %s descriptors", d.Kind)}
	}
	return src.Acquire(ctx, d)
}

// FetchGIF reads every frame of the GIF at a URL or path. client is used for
// URLs and may be nil.
func FetchGIF(ctx context.Context, client *http.Client, d Descriptor) (*gif.GIF, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	switch d.Kind {
	case KindURL:
		rc, err = (&HTTPSource{Client: client}).open(ctx, d.Location)
	case KindPath:
		rc, err = FileSource{}.open(d.Location)
	default:
		return nil, &AcquisitionError{Kind: FetchError, Target: d.String(), Err: fmt.Errorf("cannot read a GIF from a %s", d.Kind)}
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	giff, err := gif.DecodeAll(rc)
	if err != nil {
		return nil, &AcquisitionError{Kind: DecodeError, Target: d.Location, Err: err}
	}
	return giff, nil
}
