package nav

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/quarry3d/quarry/editor/node"
)

// navControllerImpl drives a camera around a pivot using spherical
// coordinates (radius, azimuth, elevation). Pointer input feeds velocities;
// Update integrates them with exponential damping so released drags drift to
// a stop instead of halting on the last event.
type navControllerImpl struct {
	mu *sync.Mutex

	cam node.CameraNode

	target mgl32.Vec3

	radius    float32
	azimuth   float32 // horizontal angle around the Y axis
	elevation float32 // vertical angle from the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed    float32
	panSpeed      float32
	zoomSpeed     float32
	dampingFactor float32

	// Pending velocities consumed by Update.
	azimuthVel   float32
	elevationVel float32
	radiusVel    float32
	panVel       mgl32.Vec3

	damping  bool
	enabled  bool
	disposed bool
}

var _ Controller = &navControllerImpl{}

// NewController creates a navigation controller bound to a camera. The
// initial spherical coordinates are derived from the camera's current
// position relative to the target, so construction never snaps the view.
//
// Parameters:
//   - cam: the camera to drive (must not be nil)
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(cam node.CameraNode, options ...ControllerBuilderOption) Controller {
	c := &navControllerImpl{
		mu:  &sync.Mutex{},
		cam: cam,

		target: cam.Target(),

		minRadius:    0.5,
		maxRadius:    500.0,
		minElevation: -math32.Pi/2 + 0.05,
		maxElevation: math32.Pi/2 - 0.05,

		orbitSpeed:    0.005,
		panSpeed:      0.002,
		zoomSpeed:     1.0,
		dampingFactor: 8.0,

		damping: true,
		enabled: true,
	}

	for _, option := range options {
		option(c)
	}

	c.mu.Lock()
	c.syncLocked()
	c.mu.Unlock()
	return c
}

func (c *navControllerImpl) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

func (c *navControllerImpl) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
	if !enabled {
		// Drop pending drift so the camera freezes where it is.
		c.azimuthVel = 0
		c.elevationVel = 0
		c.radiusVel = 0
		c.panVel = mgl32.Vec3{}
	}
}

func (c *navControllerImpl) DampingEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.damping
}

func (c *navControllerImpl) SetDampingEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.damping = enabled
}

func (c *navControllerImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *navControllerImpl) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
	c.applyPoseLocked()
}

func (c *navControllerImpl) Orbit(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled || c.disposed {
		return
	}
	c.azimuthVel += dx * c.orbitSpeed
	c.elevationVel += dy * c.orbitSpeed
}

func (c *navControllerImpl) Pan(dx, dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled || c.disposed {
		return
	}

	right, up := c.localAxesLocked()
	// Pan magnitude scales with radius so the scene tracks the pointer at
	// any zoom level.
	scale := c.panSpeed * c.radius
	c.panVel = c.panVel.Add(right.Mul(-dx * scale)).Add(up.Mul(dy * scale))
}

func (c *navControllerImpl) Zoom(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled || c.disposed {
		return
	}
	c.radiusVel -= delta * c.zoomSpeed
}

func (c *navControllerImpl) Update(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || dt <= 0 {
		return
	}

	// Consume a portion of each pending velocity. With damping the
	// remainder carries into later frames and decays exponentially; without
	// it everything is consumed at once.
	step := float32(1.0)
	if c.damping {
		step = 1 - math32.Exp(-c.dampingFactor*dt)
	}

	prior := c.elevation
	c.azimuth += c.azimuthVel * step
	c.elevation += c.elevationVel * step
	c.radius += c.radiusVel * step
	c.target = c.target.Add(c.panVel.Mul(step))

	c.azimuthVel *= 1 - step
	c.elevationVel *= 1 - step
	c.radiusVel *= 1 - step
	c.panVel = c.panVel.Mul(1 - step)

	c.clampLocked(prior)
	c.applyPoseLocked()
}

func (c *navControllerImpl) Sync() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.syncLocked()
}

func (c *navControllerImpl) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disposed = true
	c.cam = nil
}

// syncLocked derives spherical coordinates from the camera's position
// relative to the target. Caller must hold the mutex.
func (c *navControllerImpl) syncLocked() {
	if c.cam == nil {
		return
	}
	offset := c.cam.Position().Sub(c.target)
	c.radius = offset.Len()
	if c.radius < 1e-6 {
		c.radius = c.minRadius
	}
	c.azimuth = math32.Atan2(offset.X(), offset.Z())
	c.elevation = math32.Asin(clamp(offset.Y()/c.radius, -1, 1))

	// Drop any pending drift: the caller just set an explicit pose.
	c.azimuthVel = 0
	c.elevationVel = 0
	c.radiusVel = 0
	c.panVel = mgl32.Vec3{}
}

// applyPoseLocked recomputes the camera position from spherical coordinates
// and aims it at the target. Caller must hold the mutex.
func (c *navControllerImpl) applyPoseLocked() {
	if c.cam == nil {
		return
	}
	cosElev := math32.Cos(c.elevation)
	pos := mgl32.Vec3{
		c.target.X() + c.radius*cosElev*math32.Sin(c.azimuth),
		c.target.Y() + c.radius*math32.Sin(c.elevation),
		c.target.Z() + c.radius*cosElev*math32.Cos(c.azimuth),
	}
	c.cam.SetPosition(pos)
	c.cam.LookAt(c.target)
}

// localAxesLocked returns the camera's local right and up vectors consistent
// with the look-at orientation. Caller must hold the mutex.
func (c *navControllerImpl) localAxesLocked() (right, up mgl32.Vec3) {
	if c.cam == nil {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	backward := c.cam.Position().Sub(c.target)
	if backward.Len() < 1e-8 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	backward = backward.Normalize()

	worldUp := mgl32.Vec3{0, 1, 0}
	right = worldUp.Cross(backward)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}
	}
	right = right.Normalize()
	up = backward.Cross(right)
	return right, up
}

// clampLocked bounds the spherical coordinates after integrating input. The
// elevation band limits where orbit input can take the camera, but an
// explicitly applied pose may already sit outside it (a top preset looks
// straight down), so the band stretches to include the pre-integration
// elevation: holding still never moves the camera, and orbiting only ever
// pulls the elevation back toward the band.
func (c *navControllerImpl) clampLocked(priorElevation float32) {
	c.radius = clamp(c.radius, c.minRadius, c.maxRadius)
	lo := c.minElevation
	if priorElevation < lo {
		lo = priorElevation
	}
	hi := c.maxElevation
	if priorElevation > hi {
		hi = priorElevation
	}
	c.elevation = clamp(c.elevation, lo, hi)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
