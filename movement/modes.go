package movement

// Mode moves a player for a single tick. It reads and writes the state through m.
type Mode func(m *Move)

// ModeTable maps every move type to the Mode that moves players of that type.
type ModeTable map[MoveType]Mode

// DefaultModes returns the stock mode table.
func DefaultModes() ModeTable {
	return ModeTable{
		MoveTypeNone:     func(*Move) {},
		MoveTypeWalk:     fullWalkMove,
		MoveTypeNoClip:   fullNoClipMove,
		MoveTypeLadder:   fullLadderMove,
		MoveTypeFlyToss:  fullTossMove,
		MoveTypeObserver: fullObserverMove,
	}
}

// Clone returns a copy of the table that may be changed without affecting t.
func (t ModeTable) Clone() ModeTable {
	c := make(ModeTable, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}
