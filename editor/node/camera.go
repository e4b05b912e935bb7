package node

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/quarry3d/quarry/common"
)

// Projection identifies a camera's projection model.
type Projection int

const (
	// ProjectionPerspective is a standard perspective projection.
	ProjectionPerspective Projection = iota

	// ProjectionOrthographic is a parallel projection with an explicit frustum box.
	ProjectionOrthographic
)

// CameraNode is the camera capability a Node may answer. The viewport treats
// "is this node a camera" as a static interface query rather than a runtime
// type coercion: any node satisfying CameraNode can become the active camera.
type CameraNode interface {
	Node

	// Projection returns the camera's projection model.
	//
	// Returns:
	//   - Projection: perspective or orthographic
	Projection() Projection

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: the new up vector
	SetUp(up mgl32.Vec3)

	// Target returns the point the camera is aimed at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at target
	Target() mgl32.Vec3

	// LookAt aims the camera at a world-space point.
	//
	// Parameters:
	//   - target: the point to aim at
	LookAt(target mgl32.Vec3)

	// SetAspect updates the projection for a new viewport aspect ratio.
	// For orthographic cameras this recomputes left/right from the current
	// frustum height; callers that need resize-stable frusta should instead
	// drive SetFrustum with a remembered height.
	//
	// Parameters:
	//   - aspect: viewport width divided by height
	SetAspect(aspect float32)

	// Frustum returns the orthographic frustum bounds.
	// Perspective cameras return zeros.
	//
	// Returns:
	//   - left, right, bottom, top: frustum bounds in view space
	Frustum() (left, right, bottom, top float32)

	// SetFrustum sets the orthographic frustum bounds and recomputes the
	// projection matrix. No-op on perspective cameras.
	//
	// Parameters:
	//   - left, right, bottom, top: new frustum bounds
	SetFrustum(left, right, bottom, top float32)

	// ViewMatrix returns the current 4x4 view matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// Ray builds a world-space picking ray through a normalized device
	// coordinate point on the viewport.
	//
	// Parameters:
	//   - ndcX, ndcY: the NDC point in [-1, 1] on each axis
	//
	// Returns:
	//   - common.Ray: the world-space ray
	Ray(ndcX, ndcY float32) common.Ray
}

// AsCamera reports whether a node answers the camera capability.
//
// Parameters:
//   - n: the node to query
//
// Returns:
//   - CameraNode: the node as a camera, or nil
//   - bool: true if the node is a camera
func AsCamera(n Node) (CameraNode, bool) {
	cam, ok := n.(CameraNode)
	return cam, ok
}

// cameraImpl is the shared camera state for both projection models.
type cameraImpl struct {
	*nodeImpl

	camMu *sync.Mutex

	projection Projection
	up         mgl32.Vec3
	target     mgl32.Vec3

	// Perspective parameters.
	fov    float32
	aspect float32

	// Orthographic frustum bounds.
	left, right, bottom, top float32

	near float32
	far  float32
}

var _ CameraNode = &cameraImpl{}

// NewPerspectiveCamera creates a perspective CameraNode.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - CameraNode: the newly created camera
func NewPerspectiveCamera(options ...CameraBuilderOption) CameraNode {
	c := defaultCamera(ProjectionPerspective)
	for _, opt := range options {
		opt(c)
	}
	return c
}

// NewOrthographicCamera creates an orthographic CameraNode.
// The default frustum spans height 10 at aspect 1.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - CameraNode: the newly created camera
func NewOrthographicCamera(options ...CameraBuilderOption) CameraNode {
	c := defaultCamera(ProjectionOrthographic)
	for _, opt := range options {
		opt(c)
	}
	return c
}

func defaultCamera(projection Projection) *cameraImpl {
	return &cameraImpl{
		nodeImpl:   newNodeImpl(WithPosition(0, 2, 8)),
		camMu:      &sync.Mutex{},
		projection: projection,
		up:         mgl32.Vec3{0, 1, 0},
		target:     mgl32.Vec3{0, 0, 0},
		fov:        mgl32.DegToRad(50),
		aspect:     1.0,
		left:       -5,
		right:      5,
		bottom:     -5,
		top:        5,
		near:       0.1,
		far:        1000,
	}
}

func (c *cameraImpl) Projection() Projection {
	return c.projection
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.camMu.Lock()
	defer c.camMu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.camMu.Lock()
	defer c.camMu.Unlock()
	c.up = up
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.camMu.Lock()
	defer c.camMu.Unlock()
	return c.target
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.camMu.Lock()
	defer c.camMu.Unlock()
	c.target = target
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.camMu.Lock()
	defer c.camMu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	if c.projection == ProjectionOrthographic {
		halfWidth := (c.top - c.bottom) / 2 * aspect
		c.left = -halfWidth
		c.right = halfWidth
	}
}

func (c *cameraImpl) Frustum() (left, right, bottom, top float32) {
	c.camMu.Lock()
	defer c.camMu.Unlock()
	if c.projection != ProjectionOrthographic {
		return 0, 0, 0, 0
	}
	return c.left, c.right, c.bottom, c.top
}

func (c *cameraImpl) SetFrustum(left, right, bottom, top float32) {
	c.camMu.Lock()
	defer c.camMu.Unlock()
	if c.projection != ProjectionOrthographic {
		return
	}
	c.left = left
	c.right = right
	c.bottom = bottom
	c.top = top
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	pos := c.Position()
	c.camMu.Lock()
	target := c.target
	up := c.up
	c.camMu.Unlock()

	var view [16]float32
	common.LookAt(view[:],
		pos.X(), pos.Y(), pos.Z(),
		target.X(), target.Y(), target.Z(),
		up.X(), up.Y(), up.Z(),
	)
	return view
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.camMu.Lock()
	defer c.camMu.Unlock()

	var proj [16]float32
	if c.projection == ProjectionOrthographic {
		common.Orthographic(proj[:], c.left, c.right, c.bottom, c.top, c.near, c.far)
	} else {
		common.Perspective(proj[:], c.fov, c.aspect, c.near, c.far)
	}
	return proj
}

func (c *cameraImpl) Ray(ndcX, ndcY float32) common.Ray {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()

	var viewProj, inv [16]float32
	common.Mul4(viewProj[:], proj[:], view[:])
	if !common.Invert4(inv[:], viewProj[:]) {
		// Degenerate projection: fall back to a forward ray from the camera.
		return common.NewRay(c.Position(), c.Target().Sub(c.Position()))
	}

	// Unproject two depths in WebGPU clip space ([0,1] z) and run the ray
	// between them. Works for both projection models.
	nx, ny, nz := common.TransformPoint(inv[:], ndcX, ndcY, 0.0)
	fx, fy, fz := common.TransformPoint(inv[:], ndcX, ndcY, 0.9)

	origin := mgl32.Vec3{nx, ny, nz}
	dir := mgl32.Vec3{fx - nx, fy - ny, fz - nz}
	return common.NewRay(origin, dir)
}
