package event

// DivergenceEvent records a tick where the predicted state did not match the authoritative one.
type DivergenceEvent struct {
	NopEvent

	Payload DivergencePayload
}

// DivergencePayload is the fixed size body of a DivergenceEvent.
type DivergencePayload struct {
	Command    uint64
	ServerHash uint64
	ClientHash uint64
	// Distance is how far apart the two origins were.
	Distance float32
}

func (DivergenceEvent) ID() byte {
	return EventIDDivergence
}

func (ev DivergenceEvent) Encode() []byte {
	return encode(ev, ev.Payload)
}
