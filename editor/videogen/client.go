// Package videogen talks to the external video-generation service: two
// captured frames plus a prompt go in, a generated video comes back. The
// client is a thin JSON-over-HTTP wrapper; capturing the frames is the
// viewport's job.
package videogen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quarry3d/quarry/editor/viewport"
)

// Slot identifies which end of the generated clip a frame anchors.
type Slot string

const (
	// SlotStart anchors the first frame of the clip.
	SlotStart Slot = "start"

	// SlotEnd anchors the last frame of the clip.
	SlotEnd Slot = "end"
)

// TimelineFrame is a captured frame placed on the generation timeline.
type TimelineFrame struct {
	// Slot is the timeline position this frame anchors.
	Slot Slot `json:"slot"`

	// ImageDataURL is the frame as a PNG data URL.
	ImageDataURL string `json:"imageDataUrl"`

	// Camera is the pose the frame was captured from.
	Camera viewport.CameraState `json:"camera"`
}

// GeneratedVideo is the service's successful response.
type GeneratedVideo struct {
	// VideoBase64 is the encoded video payload.
	VideoBase64 string `json:"videoBase64"`

	// MimeType is the payload's MIME type, e.g. "video/mp4".
	MimeType string `json:"mimeType"`
}

// RequestError is returned when the service answers with a non-success
// status.
type RequestError struct {
	// StatusCode is the HTTP status the service answered with.
	StatusCode int

	// Body is the response body, truncated for logging.
	Body string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("video generation request failed with status %d: %s", e.StatusCode, e.Body)
}

type generateRequest struct {
	Prompt     string        `json:"prompt"`
	StartFrame framePayload  `json:"startFrame"`
	EndFrame   *framePayload `json:"endFrame,omitempty"`
}

type framePayload struct {
	Data     string               `json:"data"`
	MimeType string               `json:"mimeType"`
	Camera   viewport.CameraState `json:"camera"`
}

// Client sends generation requests to the video service.
type Client interface {
	// Generate submits a prompt with its anchor frames and returns the
	// generated video.
	//
	// Parameters:
	//   - ctx: cancellation context for the request
	//   - prompt: the text prompt driving generation
	//   - frames: the anchor frames; a start frame is required, an end frame
	//     is optional
	//
	// Returns:
	//   - *GeneratedVideo: the generated video
	//   - error: a *RequestError on non-success status, or a transport error
	Generate(ctx context.Context, prompt string, frames []TimelineFrame) (*GeneratedVideo, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
}

var _ Client = &clientImpl{}

// NewClient creates a video-generation client for the given service base URL.
//
// Parameters:
//   - baseURL: the service endpoint, e.g. "https://api.example.com/v1/video"
//   - options: functional options to configure the client
//
// Returns:
//   - Client: the newly created client
func NewClient(baseURL string, options ...ClientBuilderOption) Client {
	c := &clientImpl{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}

	for _, option := range options {
		option(c)
	}
	return c
}

func (c *clientImpl) Generate(ctx context.Context, prompt string, frames []TimelineFrame) (*GeneratedVideo, error) {
	req, err := buildRequest(prompt, frames)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		truncated := string(body)
		if len(truncated) > 512 {
			truncated = truncated[:512]
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Body: truncated}
	}

	var video GeneratedVideo
	if err := json.Unmarshal(body, &video); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}
	return &video, nil
}

// buildRequest validates the frames and assembles the wire payload. The
// start frame is mandatory; duplicate slots are rejected.
func buildRequest(prompt string, frames []TimelineFrame) (*generateRequest, error) {
	var start, end *framePayload
	for _, frame := range frames {
		data, mimeType, err := splitDataURL(frame.ImageDataURL)
		if err != nil {
			return nil, fmt.Errorf("frame %q: %w", frame.Slot, err)
		}
		payload := &framePayload{Data: data, MimeType: mimeType, Camera: frame.Camera}

		switch frame.Slot {
		case SlotStart:
			if start != nil {
				return nil, fmt.Errorf("duplicate start frame")
			}
			start = payload
		case SlotEnd:
			if end != nil {
				return nil, fmt.Errorf("duplicate end frame")
			}
			end = payload
		default:
			return nil, fmt.Errorf("unknown timeline slot %q", frame.Slot)
		}
	}
	if start == nil {
		return nil, fmt.Errorf("a start frame is required")
	}
	return &generateRequest{Prompt: prompt, StartFrame: *start, EndFrame: end}, nil
}

// splitDataURL decomposes a "data:<mime>;base64,<data>" URL into its payload
// and MIME type.
func splitDataURL(url string) (data, mimeType string, err error) {
	const scheme = "data:"
	const marker = ";base64,"

	if len(url) < len(scheme) || url[:len(scheme)] != scheme {
		return "", "", fmt.Errorf("not a data URL")
	}
	rest := url[len(scheme):]
	for i := 0; i+len(marker) <= len(rest); i++ {
		if rest[i:i+len(marker)] == marker {
			return rest[i+len(marker):], rest[:i], nil
		}
	}
	return "", "", fmt.Errorf("data URL is not base64 encoded")
}
