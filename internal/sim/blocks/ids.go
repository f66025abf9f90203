package blocks

// ID is a legacy numeric block id (0..4095).
type ID uint16

const (
	Air                 ID = 0
	Stone               ID = 1
	Grass               ID = 2
	Dirt                ID = 3
	Cobblestone         ID = 4
	Planks              ID = 5
	Sapling             ID = 6
	Bedrock             ID = 7
	FlowingWater        ID = 8
	Water               ID = 9
	FlowingLava         ID = 10
	Lava                ID = 11
	Sand                ID = 12
	Gravel              ID = 13
	GoldOre             ID = 14
	IronOre             ID = 15
	CoalOre             ID = 16
	Log                 ID = 17
	Leaves              ID = 18
	Sponge              ID = 19
	Glass               ID = 20
	LapisOre            ID = 21
	LapisBlock          ID = 22
	Sandstone           ID = 24
	Web                 ID = 30
	TallGrass           ID = 31
	DeadBush            ID = 32
	Piston              ID = 33
	PistonHead          ID = 34
	Wool                ID = 35
	PistonExtension     ID = 36
	YellowFlower        ID = 37
	RedFlower           ID = 38
	BrownMushroom       ID = 39
	RedMushroom         ID = 40
	GoldBlock           ID = 41
	IronBlock           ID = 42
	DoubleStoneSlab     ID = 43
	StoneSlab           ID = 44
	Bricks              ID = 45
	TNT                 ID = 46
	Bookshelf           ID = 47
	MossyCobblestone    ID = 48
	Obsidian            ID = 49
	Torch               ID = 50
	Fire                ID = 51
	OakStairs           ID = 53
	Chest               ID = 54
	RedstoneWire        ID = 55
	DiamondOre          ID = 56
	DiamondBlock        ID = 57
	CraftingTable       ID = 58
	Wheat               ID = 59
	Farmland            ID = 60
	Furnace             ID = 61
	StandingSign        ID = 63
	Ladder              ID = 65
	Rail                ID = 66
	StoneStairs         ID = 67
	WallSign            ID = 68
	Lever               ID = 69
	StonePressurePlate  ID = 70
	WoodenPressurePlate ID = 72
	RedstoneOre         ID = 73
	UnlitRedstoneTorch  ID = 75
	RedstoneTorch       ID = 76
	StoneButton         ID = 77
	SnowLayer           ID = 78
	Ice                 ID = 79
	Snow                ID = 80
	Cactus              ID = 81
	Clay                ID = 82
	Reeds               ID = 83
	Fence               ID = 85
	Pumpkin             ID = 86
	Netherrack          ID = 87
	SoulSand            ID = 88
	Glowstone           ID = 89
	Vine                ID = 106
	Mycelium            ID = 110
	NetherBrick         ID = 112
	EndStone            ID = 121
	EmeraldOre          ID = 129
	WoodenButton        ID = 143
	Leaves2             ID = 161
	Log2                ID = 162
	HayBlock            ID = 170
	Carpet              ID = 171
	HardenedClay        ID = 172
	CoalBlock           ID = 173
	DoublePlant         ID = 175
)

const MaxID ID = 4095

// known lists every id the classification sets have an opinion about.
// Anything else is treated as unknown and never satisfies a safety set.
var known = []ID{
	Air, Stone, Grass, Dirt, Cobblestone, Planks, Sapling, Bedrock,
	FlowingWater, Water, FlowingLava, Lava, Sand, Gravel, GoldOre, IronOre,
	CoalOre, Log, Leaves, Sponge, Glass, LapisOre, LapisBlock, Sandstone,
	Web, TallGrass, DeadBush, Piston, PistonHead, Wool, PistonExtension,
	YellowFlower, RedFlower, BrownMushroom, RedMushroom, GoldBlock, IronBlock,
	DoubleStoneSlab, StoneSlab, Bricks, TNT, Bookshelf, MossyCobblestone,
	Obsidian, Torch, Fire, OakStairs, Chest, RedstoneWire, DiamondOre,
	DiamondBlock, CraftingTable, Wheat, Farmland, Furnace, StandingSign,
	Ladder, Rail, StoneStairs, WallSign, Lever, StonePressurePlate,
	WoodenPressurePlate, RedstoneOre, UnlitRedstoneTorch, RedstoneTorch,
	StoneButton, SnowLayer, Ice, Snow, Cactus, Clay, Reeds, Fence, Pumpkin,
	Netherrack, SoulSand, Glowstone, Vine, Mycelium, NetherBrick, EndStone,
	EmeraldOre, WoodenButton, Leaves2, Log2, HayBlock, Carpet, HardenedClay,
	CoalBlock, DoublePlant,
}

// KnownIDs returns a copy of the classified id list.
func KnownIDs() []ID {
	out := make([]ID, len(known))
	copy(out, known)
	return out
}
