package loop

import (
	"github.com/google/uuid"

	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/geom"
	"github.com/tomz197/rigid2d/internal/object"
	"github.com/tomz197/rigid2d/internal/physics"
	"github.com/tomz197/rigid2d/internal/shape"
)

// BodyState is a read-only copy of one body for rendering.
type BodyState struct {
	ID           uuid.UUID      `json:"id"`
	Kind         string         `json:"kind"`
	Position     geom.Vector2   `json:"position"`
	Orientation  float64        `json:"orientation"`
	Velocity     geom.Vector2   `json:"velocity"`
	Radius       float64        `json:"radius,omitempty"`
	Vertices     []geom.Vector2 `json:"vertices,omitempty"` // world space
	Bounds       shape.Rect     `json:"bounds"`             // padded broad-phase rectangle
	HighPriority bool           `json:"high_priority,omitempty"`
	Colliding    bool           `json:"colliding,omitempty"`
}

// Snapshot is an immutable view of the world after a tick.
type Snapshot struct {
	Tick     uint64            `json:"tick"`
	Paused   bool              `json:"paused"`
	World    config.World      `json:"world"`
	Bodies   []BodyState       `json:"bodies"`
	Contacts []physics.Contact `json:"contacts"`
}

func newBodyState(b *object.Body, pad shape.Padding, colliding bool) BodyState {
	st := BodyState{
		ID:           b.ID,
		Kind:         b.Shape.Kind().String(),
		Position:     b.Position,
		Orientation:  b.Orientation,
		Velocity:     b.LinearVelocity,
		Bounds:       b.BoundingRect(pad),
		HighPriority: b.HighPriority,
		Colliding:    colliding,
	}
	switch s := b.Shape.(type) {
	case *shape.Circle:
		st.Radius = s.Radius()
	case *shape.Polygon:
		st.Vertices = b.Vertices()
	}
	return st
}
