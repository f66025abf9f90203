package world

import "fmt"

// Pos is one cell of the voxel grid.
type Pos struct {
	X int
	Y int
	Z int
}

func (p Pos) Add(o Pos) Pos { return Pos{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z} }
func (p Pos) Sub(o Pos) Pos { return Pos{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z} }

// Up returns the cell n blocks above p.
func (p Pos) Up(n int) Pos { return Pos{X: p.X, Y: p.Y + n, Z: p.Z} }

func (p Pos) ToArray() [3]int { return [3]int{p.X, p.Y, p.Z} }

func (p Pos) String() string { return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z) }

func PosFromArray(a [3]int) Pos { return Pos{X: a[0], Y: a[1], Z: a[2]} }

// MinPos and MaxPos return the component-wise bounds of a and b.
func MinPos(a, b Pos) Pos {
	return Pos{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)}
}

func MaxPos(a, b Pos) Pos {
	return Pos{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)}
}

func Manhattan(a, b Pos) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	dz := a.Z - b.Z
	if dz < 0 {
		dz = -dz
	}
	return dx + dy + dz
}
