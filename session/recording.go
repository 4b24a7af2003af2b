package session

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/oomph-ac/gamemove/event"
	"github.com/oomph-ac/gamemove/oerror"
)

const CurrentRecordingVer = "1"

// Recording is a decoded tick recording.
type Recording struct {
	Version       string
	EventsVersion string

	Events []event.Event
}

// Recorder writes events to a zstd compressed recording file on its own goroutine.
type Recorder struct {
	f   *os.File
	enc *zstd.Encoder

	eventQueue    chan event.Event
	stopRecording chan struct{}
	done          chan error
}

// StartRecording creates the recording file at path, replacing any existing one, and starts
// writing events passed to Record into it.
func StartRecording(path string) (*Recorder, error) {
	os.Remove(path)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, oerror.New("unable to open recording file: %v", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		f.Close()
		return nil, oerror.New("unable to create recording encoder: %v", err)
	}

	// The versions go first so that readers can refuse recordings they would misinterpret.
	if _, err := enc.Write([]byte(CurrentRecordingVer + "\n" + event.EventsVersion + "\n")); err != nil {
		enc.Close()
		f.Close()
		return nil, oerror.New("unable to write recording header: %v", err)
	}

	r := &Recorder{
		f:             f,
		enc:           enc,
		eventQueue:    make(chan event.Event, 256),
		stopRecording: make(chan struct{}),
		done:          make(chan error, 1),
	}
	go r.handleRecording()
	return r, nil
}

// Record queues ev to be written.
func (r *Recorder) Record(ev event.Event) {
	r.eventQueue <- ev
}

// Stop writes every queued event, then closes the recording file.
func (r *Recorder) Stop() error {
	select {
	case r.stopRecording <- struct{}{}:
	case <-time.After(time.Second * 5):
		return oerror.New("unable to stop recording")
	}
	return <-r.done
}

func (r *Recorder) handleRecording() {
	var writeErr error
	write := func(ev event.Event) {
		if writeErr != nil {
			return
		}
		if _, err := r.enc.Write(ev.Encode()); err != nil {
			writeErr = oerror.New("unable to write event: %v", err)
		}
	}

	for {
		select {
		case ev := <-r.eventQueue:
			write(ev)
		case <-r.stopRecording:
			for len(r.eventQueue) > 0 {
				write(<-r.eventQueue)
			}
			if err := r.enc.Close(); err != nil && writeErr == nil {
				writeErr = oerror.New("unable to flush recording: %v", err)
			}
			if err := r.f.Close(); err != nil && writeErr == nil {
				writeErr = oerror.New("unable to close recording file: %v", err)
			}
			r.done <- writeErr
			return
		}
	}
}

// ReadRecording decodes the recording file at path. It returns an error if the file could not be
// parsed, or if it was written with an unsupported version.
func ReadRecording(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oerror.New("unable to open recording file: %v", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, oerror.New("unable to create recording decoder: %v", err)
	}
	defer dec.Close()

	dat, err := io.ReadAll(dec)
	if err != nil {
		return nil, oerror.New("unable to read recording file: %v", err)
	}

	rec := &Recording{}
	for _, v := range []*string{&rec.Version, &rec.EventsVersion} {
		line, rest, ok := bytes.Cut(dat, []byte("\n"))
		if !ok {
			return nil, oerror.New("recording header is truncated")
		}
		*v, dat = string(line), rest
	}
	if rec.Version != CurrentRecordingVer {
		return nil, oerror.New("unsupported recording version: %s", rec.Version)
	}
	if rec.EventsVersion != event.EventsVersion {
		return nil, oerror.New("unsupported events version: %s", rec.EventsVersion)
	}

	rec.Events, err = event.DecodeEvents(dat)
	if err != nil {
		return nil, oerror.New("unable to decode events: %v", err)
	}
	return rec, nil
}
