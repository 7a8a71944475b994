package common

const (
	// TileSize is the edge of one map tile in world units.
	TileSize = 16

	FrameWidth  = 32
	FrameHeight = 32

	// PlayExtent is the logical square that must stay visible in the
	// falling rocks arena: the hazard corridor plus a one tile margin.
	PlayExtent = 352.0

	TPS = 60

	BaseWidth  = 1280
	BaseHeight = 720
)
