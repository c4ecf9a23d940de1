package loop

import "time"

// Simulation tick rate. Body velocities are expressed per tick.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Viewer rendering
const (
	FrameRate = 30
	FrameTime = time.Second / FrameRate
)

// Max render resolution in terminal cells. Larger terminals get a centered,
// bordered render area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Debug overlay
const (
	contactMarkerLength = 20.0 // world units drawn along each contact normal
	velocityMarkerScale = 10.0 // world units per unit of velocity
)

// Inactivity
const (
	InactivityDisconnect = 10 * time.Minute
)

// commandBuffer bounds pending viewer commands; extra commands are dropped.
const commandBuffer = 64

// spawnAttempts is how many random placements Spawn tries before accepting an
// overlapping one.
const spawnAttempts = 20
