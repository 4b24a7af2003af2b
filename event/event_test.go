package event

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/movement"
)

func TestDecodeEvents(t *testing.T) {
	state := movement.NewPlayerState(2, mgl32.Vec3{1, 2, 3})
	state.Stance = movement.StanceDucked
	cmd := movement.MoveCommand{Number: 9, Time: 0.15, ForwardMove: 320, Buttons: movement.ButtonDuck}

	tick := NewTickEvent(ContextClient, cmd, &state, 0xdeadbeef)
	div := DivergenceEvent{Payload: DivergencePayload{Command: 9, ServerHash: 1, ClientHash: 2, Distance: 0.5}}
	div.EvTime = tick.EvTime

	var stream bytes.Buffer
	stream.Write(tick.Encode())
	stream.Write(div.Encode())

	events, err := DecodeEvents(stream.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	got, ok := events[0].(TickEvent)
	if !ok || got != tick {
		t.Fatalf("expected %+v, got %+v", tick, events[0])
	}
	if got.Time() != 150000000 || got.Payload.Stance != uint8(movement.StanceDucked) {
		t.Fatalf("unexpected tick payload %+v", got)
	}
	if events[1] != Event(div) {
		t.Fatalf("expected %+v, got %+v", div, events[1])
	}
}

func TestDecodeTruncatedEvent(t *testing.T) {
	state := movement.NewPlayerState(0, mgl32.Vec3{})
	dat := NewTickEvent(ContextServer, movement.MoveCommand{}, &state, 1).Encode()

	events, err := DecodeEvents(dat[:len(dat)-3])
	if err == nil {
		t.Fatalf("expected truncated event to fail")
	}
	if len(events) != 0 {
		t.Fatalf("expected no complete events, got %d", len(events))
	}
}

func TestDecodeUnknownEvent(t *testing.T) {
	dat := make([]byte, 16)
	dat[0] = 200
	if _, err := DecodeEvents(dat); err == nil {
		t.Fatalf("expected unknown event to fail")
	}
}
