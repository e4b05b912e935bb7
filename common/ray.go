package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a world-space ray with a normalized direction, used for picking.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay creates a Ray from an origin and a (possibly unnormalized) direction.
//
// Parameters:
//   - origin: world-space ray origin
//   - direction: ray direction; normalized internally
//
// Returns:
//   - Ray: the constructed ray
func NewRay(origin, direction mgl32.Vec3) Ray {
	if l := direction.Len(); l > 0 {
		direction = direction.Mul(1.0 / l)
	}
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point along the ray at parameter t.
//
// Parameters:
//   - t: distance along the ray
//
// Returns:
//   - mgl32.Vec3: origin + direction * t
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectAABB tests the ray against an axis-aligned bounding box using the
// slab method. Hits that begin inside the box report t = 0.
//
// Parameters:
//   - min: minimum corner of the box
//   - max: maximum corner of the box
//
// Returns:
//   - float32: distance along the ray to the nearest hit (0 if inside)
//   - bool: true if the ray intersects the box
func (r Ray) IntersectAABB(min, max mgl32.Vec3) (float32, bool) {
	tMin := float32(0)
	tMax := float32(math32.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		origin := r.Origin[axis]
		dir := r.Direction[axis]

		if math32.Abs(dir) < 1e-9 {
			// Parallel to the slab: miss unless the origin lies within it.
			if origin < min[axis] || origin > max[axis] {
				return 0, false
			}
			continue
		}

		inv := 1.0 / dir
		t0 := (min[axis] - origin) * inv
		t1 := (max[axis] - origin) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}

// IntersectPlane tests the ray against an infinite plane.
//
// Parameters:
//   - point: any point on the plane
//   - normal: the plane normal (need not be normalized)
//
// Returns:
//   - mgl32.Vec3: the intersection point
//   - bool: true if the ray hits the plane in front of its origin
func (r Ray) IntersectPlane(point, normal mgl32.Vec3) (mgl32.Vec3, bool) {
	denom := normal.Dot(r.Direction)
	if math32.Abs(denom) < 1e-7 {
		return mgl32.Vec3{}, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return mgl32.Vec3{}, false
	}
	return r.At(t), true
}

// ClosestPointToLine computes the closest approach between the ray and a line
// defined by a point and direction. Used by the gizmo controller to test axis
// handle hits.
//
// Parameters:
//   - point: a point on the line
//   - dir: the line direction (need not be normalized)
//
// Returns:
//   - float32: parameter along the line at the closest approach
//   - float32: distance between the ray and the line at that point
func (r Ray) ClosestPointToLine(point, dir mgl32.Vec3) (float32, float32) {
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1.0 / l)
	}

	w := r.Origin.Sub(point)
	a := r.Direction.Dot(r.Direction)
	b := r.Direction.Dot(dir)
	c := dir.Dot(dir)
	d := r.Direction.Dot(w)
	e := dir.Dot(w)

	denom := a*c - b*b
	var sc, tc float32
	if math32.Abs(denom) < 1e-7 {
		// Nearly parallel: project the offset onto the line.
		sc = 0
		tc = e / c
	} else {
		sc = (b*e - c*d) / denom
		tc = (a*e - b*d) / denom
	}

	onRay := r.At(sc)
	onLine := point.Add(dir.Mul(tc))
	return tc, onRay.Sub(onLine).Len()
}
