package blocks

// Known is every classified id. Inverted sets are always clipped to it so an
// unknown id can never satisfy a safety predicate.
var Known = New("known", known...)

var (
	AirSet = New("air", Air)

	Liquids = New("liquids", FlowingWater, Water, FlowingLava, Lava)

	// Falling blocks drop into a space that is dug out below them.
	Falling = New("falling", Sand, Gravel)

	FeetCanWalkThrough = New("feet_can_walk_through",
		Air, TallGrass, DeadBush, YellowFlower, RedFlower, BrownMushroom,
		RedMushroom, Sapling, Torch, RedstoneTorch, UnlitRedstoneTorch,
		RedstoneWire, Rail, Lever, StonePressurePlate, WoodenPressurePlate,
		StoneButton, WoodenButton, SnowLayer, Carpet, Wheat, DoublePlant,
		StandingSign, WallSign,
	)

	HeadCanWalkThrough = FeetCanWalkThrough.Intersect(New("", SnowLayer, Carpet).Invert()).
				Named("head_can_walk_through")

	SafeGround = New("safe_ground",
		Stone, Grass, Dirt, Cobblestone, Planks, Bedrock, Sand, Gravel,
		GoldOre, IronOre, CoalOre, Log, Leaves, Sponge, Glass, LapisOre,
		LapisBlock, Sandstone, Wool, GoldBlock, IronBlock, DoubleStoneSlab,
		Bricks, Bookshelf, MossyCobblestone, Obsidian, DiamondOre,
		DiamondBlock, CraftingTable, Furnace, RedstoneOre, Snow, Ice, Clay,
		Pumpkin, Netherrack, Glowstone, Mycelium, NetherBrick, EndStone,
		EmeraldOre, Leaves2, Log2, HayBlock, HardenedClay, CoalBlock, Chest,
		Farmland, SoulSand,
	)

	dangerousSide = Liquids.Union(New("", Fire, Cactus))

	SafeSide = Known.Intersect(dangerousSide.Invert()).Named("safe_side")

	SafeCeiling = Known.Intersect(Falling.Union(Liquids).Union(New("", Fire)).Invert()).
			Named("safe_ceiling")

	SafeAfterDestruction = SafeGround.Union(FeetCanWalkThrough).
				Union(New("", Web, Vine, Ladder, Reeds)).
				Named("safe_after_destruction")

	FastDestructible = New("fast_destructible", Dirt, Gravel, Sand, Sandstone)

	Logs = New("logs", Log, Log2)

	TreeStuff = New("tree_stuff", Log, Log2, Leaves, Leaves2)

	DefaultForbidden = New("default_forbidden",
		Bedrock, Cactus, Obsidian, PistonExtension, PistonHead)

	DefaultUpwardsBuild = New("default_upwards_build",
		Dirt, Stone, Cobblestone, Sand)
)

// SafeSideAround reports whether all four horizontal neighbours of
// (x,y,z) are safe to stand next to.
func SafeSideAround(r Reader, x, y, z int) bool {
	return SafeSide.IsAt(r, x+1, y, z) &&
		SafeSide.IsAt(r, x-1, y, z) &&
		SafeSide.IsAt(r, x, y, z+1) &&
		SafeSide.IsAt(r, x, y, z-1)
}

// SafeSideAndCeilingAround additionally requires a safe block above.
func SafeSideAndCeilingAround(r Reader, x, y, z int) bool {
	return SafeSideAround(r, x, y, z) && SafeCeiling.IsAt(r, x, y+1, z)
}
