package movement

// MaxPlayers is the amount of player slots an IntervalTable tracks.
const MaxPlayers = 64

// Interval identifies a throttled check.
type Interval uint8

const (
	IntervalGround Interval = iota
	IntervalStuck
	IntervalLadder
	intervalCount
)

// IntervalTable remembers, per player slot, when a throttled check may next run. Each simulation
// context owns its own table so that contexts never observe each other's timing.
type IntervalTable struct {
	next [MaxPlayers][intervalCount]float64
}

// Due reports whether the check is due for slot at now, and if so schedules the next run period
// later. now and period share a unit, seconds or command numbers. Slots out of range are never throttled.
func (t *IntervalTable) Due(slot int, kind Interval, now, period float64) bool {
	if t == nil || slot < 0 || slot >= MaxPlayers {
		return true
	}
	if now < t.next[slot][kind] {
		return false
	}
	t.next[slot][kind] = now + period
	return true
}

// Reset clears the schedule of a slot.
func (t *IntervalTable) Reset(slot int) {
	if t == nil || slot < 0 || slot >= MaxPlayers {
		return
	}
	t.next[slot] = [intervalCount]float64{}
}

// checkInterval reports whether a tick-count interval check runs this tick. Player slots offset the
// command number so that players with the same interval spread their checks across ticks.
func (m *Move) checkInterval(kind Interval) bool {
	var interval int
	switch kind {
	case IntervalGround:
		interval = m.cfg.GroundCheckInterval
	case IntervalStuck:
		interval = m.cfg.StuckCheckInterval
	case IntervalLadder:
		interval = m.cfg.LadderCheckInterval
	}
	if interval <= 1 {
		return true
	}
	slot := uint64(max(m.state.Slot, 0))
	return (m.cmd.Number+slot)%uint64(interval) == 0
}
