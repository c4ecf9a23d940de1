package loop

import (
	"math"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/object"
)

// Integrate advances b by one tick and turns its velocity back towards the
// world when its origin has left the world rectangle on an axis.
func Integrate(b *object.Body, world config.World) {
	b.Position = b.Position.Add(b.LinearVelocity)
	b.Orientation += b.AngularVelocity

	switch {
	case b.Position.X > world.Width:
		b.LinearVelocity.X = -math.Abs(b.LinearVelocity.X)
	case b.Position.X < 0:
		b.LinearVelocity.X = math.Abs(b.LinearVelocity.X)
	}
	switch {
	case b.Position.Y > world.Height:
		b.LinearVelocity.Y = -math.Abs(b.LinearVelocity.Y)
	case b.Position.Y < 0:
		b.LinearVelocity.Y = math.Abs(b.LinearVelocity.Y)
	}
}
