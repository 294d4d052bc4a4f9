package askcii

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultEndpoint hosts text-to-image models behind a
	// POST <endpoint>/<model> API.
	DefaultEndpoint = "https://api-inference.huggingface.co/models"
	DefaultModel    = "stabilityai/stable-diffusion-2-1-base"
	DefaultSteps    = 20
)

// GenerationSource asks a hosted diffusion model to draw an image from a
// prompt. The model runs remotely; this is a plain HTTP client for it.
type GenerationSource struct {
	Client   *http.Client // http.DefaultClient when nil
	Endpoint string       // DefaultEndpoint when empty
	Token    string       // Sent as a bearer token when set
}

type generationRequest struct {
	Inputs     string               `json:"inputs"`
	Parameters generationParameters `json:"parameters"`
}

type generationParameters struct {
	NumInferenceSteps int `json:"num_inference_steps"`
}

func (s *GenerationSource) Acquire(ctx context.Context, d Descriptor) (image.Image, error) {
	fail := func(err error) error {
		return &AcquisitionError{Kind: GenerationError, Target: d.Prompt, Err: err}
	}
	switch {
	case strings.TrimSpace(d.Prompt) == "":
		return nil, fail(errors.New("empty prompt"))
	case d.Model == "":
		return nil, fail(errors.New("no model"))
	case d.Steps <= 0:
		return nil, fail(fmt.Errorf("steps must be positive, got %d", d.Steps))
	}

	payload, err := json.Marshal(generationRequest{
		Inputs:     d.Prompt,
		Parameters: generationParameters{NumInferenceSteps: d.Steps},
	})
	if err != nil {
		return nil, fail(err)
	}

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(endpoint, "/")+"/"+d.Model, bytes.NewReader(payload))
	if err != nil {
		return nil, fail(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Error bodies are short JSON documents; keep enough to be useful.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fail(fmt.Errorf("model %s: %s: %s", d.Model, resp.Status, bytes.TrimSpace(msg)))
	}
	img, err := Decode(resp.Body)
	if err != nil {
		return nil, fail(fmt.Errorf("model %s returned no image: %w", d.Model, err))
	}
	return img, nil
}
