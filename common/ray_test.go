package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRayIntersectAABBHit(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})

	dist, ok := r.IntersectAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assert.True(t, ok)
	assert.InDelta(t, 9.0, dist, 1e-5)
}

func TestRayIntersectAABBMiss(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 1, 0})

	_, ok := r.IntersectAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assert.False(t, ok)
}

func TestRayIntersectAABBFromInside(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})

	dist, ok := r.IntersectAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assert.True(t, ok)
	assert.Equal(t, float32(0), dist)
}

func TestRayIntersectAABBParallelSlab(t *testing.T) {
	// Ray parallel to the X slab, origin outside it.
	r := NewRay(mgl32.Vec3{5, 0, 10}, mgl32.Vec3{0, 0, -1})

	_, ok := r.IntersectAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	assert.False(t, ok)
}

func TestRayIntersectPlane(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{0, -1, 0})

	pt, ok := r.IntersectPlane(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	assert.True(t, ok)
	assert.InDelta(t, 0.0, pt.Y(), 1e-5)

	// Plane behind the ray origin.
	_, ok = r.IntersectPlane(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, 1, 0})
	assert.False(t, ok)
}

func TestRayClosestPointToLine(t *testing.T) {
	// Ray along -Z at height y=1; line is the X axis. Closest approach is
	// distance 1, at x=0 on the line.
	r := NewRay(mgl32.Vec3{0, 1, 10}, mgl32.Vec3{0, 0, -1})

	along, dist := r.ClosestPointToLine(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	assert.InDelta(t, 0.0, along, 1e-5)
	assert.InDelta(t, 1.0, dist, 1e-5)
}

func TestRayAt(t *testing.T) {
	r := NewRay(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -2})
	pt := r.At(4)
	// Direction is normalized at construction.
	assert.InDelta(t, -1.0, pt.Z(), 1e-5)
	assert.InDelta(t, 1.0, pt.X(), 1e-5)
}
