package geom

// Space is a coordinate frame: a rotation followed by a translation.
// It maps points expressed in the frame's local coordinates into its parent frame.
type Space struct {
	Position Vector2
	Angle    float64 // radians
}

// Transform maps a local point into the parent frame (rotate, then translate).
func (s Space) Transform(p Vector2) Vector2 {
	return p.Rotate(s.Angle).Add(s.Position)
}

// Inverse maps a parent-frame point back into local coordinates.
func (s Space) Inverse(p Vector2) Vector2 {
	return p.Sub(s.Position).Rotate(-s.Angle)
}

// Rotate returns the frame turned by theta.
func (s Space) Rotate(theta float64) Space {
	s.Angle += theta
	return s
}

// Translate returns the frame shifted by d.
func (s Space) Translate(d Vector2) Space {
	s.Position = s.Position.Add(d)
	return s
}

// Neg returns the frame with negated offset and angle.
func (s Space) Neg() Space {
	return Space{Position: s.Position.Neg(), Angle: -s.Angle}
}

// Transform applies each space in order, innermost first
// (for example body-local, then camera, then screen).
func Transform(p Vector2, spaces ...Space) Vector2 {
	for _, s := range spaces {
		p = s.Transform(p)
	}
	return p
}

// InverseTransform undoes Transform for the same chain of spaces.
func InverseTransform(p Vector2, spaces ...Space) Vector2 {
	for i := len(spaces) - 1; i >= 0; i-- {
		p = spaces[i].Inverse(p)
	}
	return p
}
