package blocks

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Set is an immutable named predicate over block states. Every operation
// returns a fresh Set; the receiver is never modified.
type Set struct {
	name string
	bits *bitset.BitSet
}

// New returns a set containing every metadata variant of ids.
func New(name string, ids ...ID) Set {
	b := bitset.New(stateCount)
	for _, id := range ids {
		if id > MaxID {
			continue
		}
		base := uint(id) << 4
		for m := uint(0); m < 16; m++ {
			b.Set(base + m)
		}
	}
	return Set{name: name, bits: b}
}

// NewStates returns a set containing exactly the given states.
func NewStates(name string, states ...State) Set {
	b := bitset.New(stateCount)
	for _, st := range states {
		b.Set(uint(st))
	}
	return Set{name: name, bits: b}
}

func (s Set) bitmap() *bitset.BitSet {
	if s.bits == nil {
		return bitset.New(stateCount)
	}
	return s.bits
}

func (s Set) Name() string { return s.name }

// Named returns the same membership under a different name.
func (s Set) Named(name string) Set {
	return Set{name: name, bits: s.bitmap()}
}

func (s Set) Union(o Set) Set {
	return Set{name: s.name + "|" + o.name, bits: s.bitmap().Union(o.bitmap())}
}

func (s Set) Intersect(o Set) Set {
	return Set{name: s.name + "&" + o.name, bits: s.bitmap().Intersection(o.bitmap())}
}

func (s Set) Invert() Set {
	return Set{name: "!" + s.name, bits: s.bitmap().Complement()}
}

func (s Set) Contains(st State) bool {
	if s.bits == nil {
		return false
	}
	return s.bits.Test(uint(st))
}

// ContainsID reports whether any metadata variant of id is a member.
func (s Set) ContainsID(id ID) bool {
	if s.bits == nil || id > MaxID {
		return false
	}
	base := uint(id) << 4
	next, ok := s.bits.NextSet(base)
	return ok && next < base+16
}

func (s Set) IsAt(r Reader, x, y, z int) bool {
	return s.Contains(r.BlockStateAt(x, y, z))
}

// Equal compares membership only; names are ignored.
func (s Set) Equal(o Set) bool {
	return s.bitmap().Equal(o.bitmap())
}

func (s Set) Empty() bool {
	return s.bits == nil || s.bits.None()
}

// IDs lists the ids that have at least one member state, ascending.
func (s Set) IDs() []ID {
	if s.bits == nil {
		return nil
	}
	seen := map[ID]struct{}{}
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		seen[ID(i>>4)] = struct{}{}
	}
	out := make([]ID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
