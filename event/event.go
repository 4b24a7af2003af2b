package event

import (
	"bytes"
	"encoding/binary"

	"github.com/oomph-ac/gamemove/internal"
	"github.com/oomph-ac/gamemove/oerror"
)

// EventsVersion is the version of the event encoding. Recordings with another version can't be read.
const EventsVersion = "1"

// Event is a single entry of a tick recording.
type Event interface {
	ID() byte
	Encode() []byte

	// Time is the simulation time of the event in nanoseconds.
	Time() int64
}

type NopEvent struct {
	EvTime int64
}

func (n NopEvent) Time() int64 {
	return n.EvTime
}

const (
	_ = iota
	EventIDTick
	EventIDDivergence
)

// WriteEventHeader writes the ID and time of ev to buf.
func WriteEventHeader(ev Event, buf *bytes.Buffer) {
	binary.Write(buf, binary.LittleEndian, uint64(ev.ID()))
	binary.Write(buf, binary.LittleEndian, uint64(ev.Time()))
}

// encode writes the header of ev followed by payload, which must be a fixed size value.
func encode(ev Event, payload any) []byte {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	WriteEventHeader(ev, buf)
	binary.Write(buf, binary.LittleEndian, payload)
	return bytes.Clone(buf.Bytes())
}

// DecodeEvents decodes every event in dat.
func DecodeEvents(dat []byte) ([]Event, error) {
	buf := bytes.NewBuffer(dat)
	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, oerror.New("error decoding event %d: %v", len(events), err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// DecodeEvent decodes the next event in buf.
func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	var header struct {
		ID   uint64
		Time uint64
	}
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, oerror.New("error reading event header: %v", err)
	}
	t := int64(header.Time)

	switch byte(header.ID) {
	case EventIDTick:
		ev := TickEvent{}
		ev.EvTime = t
		if err := binary.Read(buf, binary.LittleEndian, &ev.Payload); err != nil {
			return nil, oerror.New("error reading TickEvent: %v", err)
		}
		return ev, nil
	case EventIDDivergence:
		ev := DivergenceEvent{}
		ev.EvTime = t
		if err := binary.Read(buf, binary.LittleEndian, &ev.Payload); err != nil {
			return nil, oerror.New("error reading DivergenceEvent: %v", err)
		}
		return ev, nil
	default:
		return nil, oerror.New("unknown event: %d", header.ID)
	}
}
