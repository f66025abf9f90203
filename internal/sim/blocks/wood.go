package blocks

import "strings"

// WoodType identifies one tree species: the log block it grows as and the
// lower two metadata bits that select the variant.
type WoodType struct {
	Name        string
	Block       ID
	LowerBits   int
	SaplingMeta int
}

var (
	Oak     = WoodType{Name: "oak", Block: Log, LowerBits: 0, SaplingMeta: 0}
	Spruce  = WoodType{Name: "spruce", Block: Log, LowerBits: 1, SaplingMeta: 1}
	Birch   = WoodType{Name: "birch", Block: Log, LowerBits: 2, SaplingMeta: 2}
	Jungle  = WoodType{Name: "jungle", Block: Log, LowerBits: 3, SaplingMeta: 3}
	Acacia  = WoodType{Name: "acacia", Block: Log2, LowerBits: 0, SaplingMeta: 4}
	DarkOak = WoodType{Name: "dark_oak", Block: Log2, LowerBits: 1, SaplingMeta: 5}
)

var woodTypes = []WoodType{Oak, Spruce, Birch, Jungle, Acacia, DarkOak}

func WoodTypeByName(name string) (WoodType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, w := range woodTypes {
		if w.Name == name {
			return w, true
		}
	}
	return WoodType{}, false
}

// Matches reports whether st is a log of this species. Only the lower two
// metadata bits select the species; the upper bits hold the log axis.
func (w WoodType) Matches(st State) bool {
	return st.ID() == w.Block && st.Meta()&0x3 == w.LowerBits
}

// LogState is the upright log state for this species.
func (w WoodType) LogState() State {
	return StateOf(w.Block, w.LowerBits)
}
