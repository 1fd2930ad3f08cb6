package scene

// Clock is the scene's animation time. It runs as a behaviour so pausing
// freezes the cubes without stalling camera input.
type Clock struct {
	Elapsed float64
	Paused  bool
	Scale   float64
}

func NewClock() *Clock {
	return &Clock{Scale: 1}
}

func (c *Clock) Start() {}

func (c *Clock) Update(deltaTime float64) {
	if c.Paused {
		return
	}
	c.Elapsed += deltaTime * c.Scale
}
