package viewport

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"log"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quarry3d/quarry/editor/node"
)

// CameraState is a serializable camera pose. It round-trips through JSON for
// storage alongside captured frames.
type CameraState struct {
	Position mgl32.Vec3 `json:"position"`
	Target   mgl32.Vec3 `json:"target"`
	Up       mgl32.Vec3 `json:"up"`
}

// CapturedFrame pairs a rendered frame with the camera pose it was rendered
// from, ready to hand to the video-generation workflow.
type CapturedFrame struct {
	// ImageDataURL is the frame encoded as a PNG data URL.
	ImageDataURL string `json:"imageDataUrl"`

	// Camera is the pose the frame was rendered from.
	Camera CameraState `json:"camera"`
}

func (v *viewportImpl) CameraState() *CameraState {
	v.mu.Lock()
	camera := v.camera
	nc := v.navCtl
	v.mu.Unlock()

	if camera == nil {
		return nil
	}

	target := camera.Target()
	if nc != nil {
		target = nc.Target()
	}
	return &CameraState{
		Position: camera.Position(),
		Target:   target,
		Up:       camera.Up(),
	}
}

func (v *viewportImpl) SetCameraState(state CameraState) {
	v.mu.Lock()
	camera := v.camera
	nc := v.navCtl
	width := v.width
	height := v.height
	v.mu.Unlock()

	if camera == nil {
		return
	}

	if nc != nil {
		nc.SetTarget(state.Target)
	}
	camera.SetPosition(state.Position)
	camera.SetUp(state.Up)
	camera.LookAt(state.Target)
	if nc != nil {
		nc.Sync()
	}

	v.mu.Lock()
	v.frustums.applyProjection(camera, width, height)
	v.mu.Unlock()
}

func (v *viewportImpl) CaptureFrame() *CapturedFrame {
	state := v.CameraState()

	v.mu.Lock()
	surface := v.surface
	camera := v.camera
	graph := v.graph
	v.mu.Unlock()

	if surface == nil || camera == nil || graph == nil || state == nil {
		return nil
	}
	root := graph.Root()

	// Helper geometry (gizmo handles, grids, bounds outlines) must not
	// appear in captured frames. Visibility is restored unconditionally,
	// render failure included.
	hidden := hideHelpers(root)
	defer func() {
		for _, n := range hidden {
			n.SetVisible(true)
		}
	}()

	img, err := surface.Snapshot(root, camera)
	if err != nil {
		log.Printf("viewport: frame capture failed: %v", err)
		return nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("viewport: frame encode failed: %v", err)
		return nil
	}

	return &CapturedFrame{
		ImageDataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Camera:       *state,
	}
}

// hideHelpers makes every currently visible helper node invisible and
// returns the nodes whose visibility was changed.
func hideHelpers(root node.Node) []node.Node {
	var hidden []node.Node
	var walk func(n node.Node)
	walk = func(n node.Node) {
		if n == nil {
			return
		}
		if n.Helper() && n.Visible() {
			n.SetVisible(false)
			hidden = append(hidden, n)
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(root)
	return hidden
}
