package world

// Facing is one of the six axis directions.
type Facing int

const (
	Down Facing = iota
	Up
	North
	South
	West
	East
)

var facingNames = [...]string{"DOWN", "UP", "NORTH", "SOUTH", "WEST", "EAST"}

var facingOffsets = [...]Pos{
	Down:  {Y: -1},
	Up:    {Y: 1},
	North: {Z: -1},
	South: {Z: 1},
	West:  {X: -1},
	East:  {X: 1},
}

func (f Facing) String() string {
	if f < Down || f > East {
		return "UNKNOWN"
	}
	return facingNames[f]
}

func (f Facing) Offset() Pos { return facingOffsets[f] }

func (f Facing) Opposite() Facing {
	switch f {
	case Down:
		return Up
	case Up:
		return Down
	case North:
		return South
	case South:
		return North
	case West:
		return East
	default:
		return West
	}
}

// Offset returns the neighbour of p in direction f.
func (p Pos) Offset(f Facing) Pos { return p.Add(f.Offset()) }

// DirectionFor maps a unit delta onto its facing. ok is false for zero or
// non-axis deltas.
func DirectionFor(delta Pos) (Facing, bool) {
	for f, off := range facingOffsets {
		if off == delta {
			return Facing(f), true
		}
	}
	return 0, false
}
