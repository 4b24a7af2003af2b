package session

import (
	"testing"

	"github.com/oomph-ac/gamemove/movement"
)

func prediction(n uint64) Prediction {
	return Prediction{Command: movement.MoveCommand{Number: n}, Hash: n * 10}
}

func TestHistoryAppendOverwritesOldest(t *testing.T) {
	h := NewHistory(3)
	for n := uint64(1); n <= 5; n++ {
		h.Append(prediction(n))
	}
	if h.Len() != 3 || h.Cap() != 3 {
		t.Fatalf("expected 3 of 3 predictions, got %d of %d", h.Len(), h.Cap())
	}
	var got []uint64
	for _, p := range h.All() {
		got = append(got, p.Command.Number)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != 4 || got[2] != 5 {
		t.Fatalf("expected [3 4 5], got %v", got)
	}
	if _, ok := h.Get(3); ok {
		t.Fatalf("expected out of range get to fail")
	}
}

func TestHistoryAcknowledge(t *testing.T) {
	h := NewHistory(8)
	for n := uint64(1); n <= 5; n++ {
		h.Append(prediction(n))
	}
	p, ok := h.Acknowledge(3)
	if !ok || p.Hash != 30 {
		t.Fatalf("expected prediction for command 3, got %+v (%v)", p, ok)
	}
	if h.Len() != 2 {
		t.Fatalf("expected 2 predictions left, got %d", h.Len())
	}
	if oldest, _ := h.Get(0); oldest.Command.Number != 4 {
		t.Fatalf("expected command 4 to be oldest, got %d", oldest.Command.Number)
	}
	if _, ok := h.Acknowledge(2); ok {
		t.Fatalf("expected already acknowledged command to be missing")
	}
	if h.Len() != 2 {
		t.Fatalf("expected missing acknowledgement to keep newer predictions, got %d", h.Len())
	}
}

func TestHistorySet(t *testing.T) {
	h := NewHistory(2)
	h.Append(prediction(1))
	if !h.Set(0, prediction(7)) {
		t.Fatalf("expected set to succeed")
	}
	if p, _ := h.Get(0); p.Command.Number != 7 {
		t.Fatalf("expected replaced prediction, got %d", p.Command.Number)
	}
	if h.Set(1, prediction(8)) {
		t.Fatalf("expected set past the end to fail")
	}
	if _, ok := NewHistory(1).Pop(); ok {
		t.Fatalf("expected pop on empty history to fail")
	}
}
