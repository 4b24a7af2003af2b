package session

import (
	"iter"

	"github.com/oomph-ac/gamemove/movement"
)

// Prediction is a command the predicting context ran ahead of the authoritative one, with the state
// it predicted.
type Prediction struct {
	Command movement.MoveCommand
	State   movement.PlayerState
	Hash    uint64
}

// History is a fixed size ring of predictions, oldest first. Appending to a full history drops the
// oldest prediction.
type History struct {
	items []Prediction
	head  int
	size  int
}

// NewHistory returns an empty history holding up to size predictions.
func NewHistory(size int) *History {
	return &History{items: make([]Prediction, max(size, 1))}
}

// Len returns the amount of predictions held.
func (h *History) Len() int {
	return h.size
}

// Cap returns the maximum amount of predictions the history can hold.
func (h *History) Cap() int {
	return len(h.items)
}

// Get returns the prediction at position i, where 0 is the oldest.
func (h *History) Get(i int) (Prediction, bool) {
	if i < 0 || i >= h.size {
		return Prediction{}, false
	}
	return h.items[(h.head+i)%len(h.items)], true
}

// Set replaces the prediction at position i. It returns false if i is out of range.
func (h *History) Set(i int, p Prediction) bool {
	if i < 0 || i >= h.size {
		return false
	}
	h.items[(h.head+i)%len(h.items)] = p
	return true
}

// Append adds p as the newest prediction.
func (h *History) Append(p Prediction) {
	h.items[(h.head+h.size)%len(h.items)] = p
	if h.size == len(h.items) {
		h.head = (h.head + 1) % len(h.items)
		return
	}
	h.size++
}

// Pop removes and returns the oldest prediction.
func (h *History) Pop() (Prediction, bool) {
	if h.size == 0 {
		return Prediction{}, false
	}
	p := h.items[h.head]
	h.items[h.head] = Prediction{}
	h.head = (h.head + 1) % len(h.items)
	h.size--
	return p, true
}

// Acknowledge drops every prediction up to and including the one made for command number n and
// returns that prediction. The boolean is false if no prediction for n was held.
func (h *History) Acknowledge(n uint64) (Prediction, bool) {
	for h.size > 0 {
		oldest, _ := h.Get(0)
		if oldest.Command.Number > n {
			break
		}
		h.Pop()
		if oldest.Command.Number == n {
			return oldest, true
		}
	}
	return Prediction{}, false
}

// All iterates over the predictions held, oldest first.
func (h *History) All() iter.Seq2[int, Prediction] {
	return func(yield func(int, Prediction) bool) {
		for i := range h.size {
			if !yield(i, h.items[(h.head+i)%len(h.items)]) {
				return
			}
		}
	}
}
