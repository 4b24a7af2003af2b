package collision

// Contents is a bit set describing what occupies a point or a brush.
type Contents uint32

const (
	ContentsEmpty Contents = 0
	ContentsSolid Contents = 1 << (iota - 1)
	ContentsWindow
	ContentsGrate
	ContentsSlime
	ContentsWater
	ContentsPlayerClip
	ContentsMonster
	ContentsLadder
	ContentsCurrent0
	ContentsCurrent90
	ContentsCurrent180
	ContentsCurrent270
	ContentsCurrentUp
	ContentsCurrentDown
)

const (
	// MaskWater matches any liquid volume.
	MaskWater = ContentsWater | ContentsSlime
	// MaskCurrent matches any flowing volume.
	MaskCurrent = ContentsCurrent0 | ContentsCurrent90 | ContentsCurrent180 | ContentsCurrent270 |
		ContentsCurrentUp | ContentsCurrentDown
	// MaskPlayerSolid is what blocks a player hull.
	MaskPlayerSolid = ContentsSolid | ContentsWindow | ContentsGrate | ContentsPlayerClip | ContentsMonster
	// MaskPlayerSolidBrushOnly is MaskPlayerSolid without other entities.
	MaskPlayerSolidBrushOnly = ContentsSolid | ContentsWindow | ContentsGrate | ContentsPlayerClip
	// MaskLadder is the sweep mask used to find climbable surfaces.
	MaskLadder = MaskPlayerSolid | ContentsLadder
)

// Has returns true if any of the bits of flags are set in c.
func (c Contents) Has(flags Contents) bool {
	return c&flags != 0
}

// Group filters which entities a sweep may collide with.
type Group uint8

const (
	GroupNone Group = iota
	GroupPlayer
	GroupPlayerMovement
	GroupDebris
)

// ShouldCollide reports whether a sweep made for group a is blocked by volumes tagged with group b.
func ShouldCollide(a, b Group) bool {
	if a == GroupPlayer || a == GroupPlayerMovement {
		return b != GroupDebris
	}
	return true
}
