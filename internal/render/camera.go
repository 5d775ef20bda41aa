package render

// cameraSmoothing is the fraction of the remaining distance to the goal
// covered each frame.
const cameraSmoothing = 0.2

// Camera is the viewpoint in tile units. Gameplay code moves the goal; the
// renderer steps the position toward it once per frame.
type Camera struct {
	X, Y         float64
	GotoX, GotoY float64
}

// Reset places the camera at (x, y) with no pending movement.
func (c *Camera) Reset(x, y float64) {
	c.X, c.Y = x, y
	c.GotoX, c.GotoY = x, y
}

// Step moves the camera one smoothing step toward its goal. The form
// x += (goal-x)*k equals x*(1-k) + goal*k but leaves x exactly unchanged
// at rest.
func (c *Camera) Step() {
	c.X += (c.GotoX - c.X) * cameraSmoothing
	c.Y += (c.GotoY - c.Y) * cameraSmoothing
}

// Target sets the goal.
func (c *Camera) Target(x, y float64) {
	c.GotoX, c.GotoY = x, y
}
