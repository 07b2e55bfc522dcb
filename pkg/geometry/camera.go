package geometry

import (
	"encoding/json"
	"math"

	"github.com/dps/go-raytracer/pkg/core"
)

// Camera generates primary rays for normalized image coordinates. The view
// frame is derived once from the look-from/look-at parameters; VUp must not
// be parallel to the view direction or the basis is undefined.
type Camera struct {
	LookFrom core.Vec3 `json:"look_from"`
	LookAt   core.Vec3 `json:"look_at"`
	VUp      core.Vec3 `json:"vup"`
	VFov     float64   `json:"vfov"` // Vertical field of view in degrees
	Aspect   float64   `json:"aspect"`

	// Derived view frame
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
}

// NewCamera creates a camera and computes its view frame
func NewCamera(lookFrom, lookAt, vup core.Vec3, vfov, aspect float64) *Camera {
	c := &Camera{
		LookFrom: lookFrom,
		LookAt:   lookAt,
		VUp:      vup,
		VFov:     vfov,
		Aspect:   aspect,
	}
	c.setup()
	return c
}

// setup derives the orthonormal basis and viewport vectors
func (c *Camera) setup() {
	theta := c.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	halfWidth := c.Aspect * halfHeight

	c.w = c.LookFrom.Subtract(c.LookAt).Normalize()
	c.u = c.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	c.origin = c.LookFrom
	c.horizontal = c.u.Multiply(2 * halfWidth)
	c.vertical = c.v.Multiply(2 * halfHeight)
	c.lowerLeftCorner = c.origin.
		Subtract(c.u.Multiply(halfWidth)).
		Subtract(c.v.Multiply(halfHeight)).
		Subtract(c.w)
}

// GetRay generates a ray through viewport coordinates (s, t) in [0, 1],
// with (0, 0) at the lower left corner
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)
	return core.NewRay(c.origin, direction)
}

// UnmarshalJSON decodes the camera parameters and rebuilds the view frame
func (c *Camera) UnmarshalJSON(data []byte) error {
	type alias Camera
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*c = Camera(a)
	c.setup()
	return nil
}
