package geom

// Direction is the sense in which an edge or face is traversed relative to
// its underlying geometry.
type Direction int8

const (
	Forward Direction = iota
	Reverse
)

// Compose combines two senses: equal senses give Forward, mixed give Reverse.
func (d Direction) Compose(o Direction) Direction {
	if d == o {
		return Forward
	}
	return Reverse
}

// Flip returns the opposite sense.
func (d Direction) Flip() Direction { return d.Compose(Reverse) }

func (d Direction) String() string {
	if d == Reverse {
		return "Reverse"
	}
	return "Forward"
}
