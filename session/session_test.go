package session

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/event"
	"github.com/oomph-ac/gamemove/movement"
	"github.com/oomph-ac/gamemove/settings"
	"github.com/oomph-ac/gamemove/world"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func floorWorld(extra ...world.Brush) *world.World {
	w := world.New().MustAddBrush(world.Brush{Name: "floor", Box: cube.Box(-4096, -4096, -64, 4096, 4096, 0)})
	return w.MustAddBrush(extra...)
}

func forwardCommands(n int) []movement.MoveCommand {
	cmds := make([]movement.MoveCommand, n)
	for i := range cmds {
		cmds[i] = movement.MoveCommand{Number: uint64(i + 1), Time: float64(i) / 60, ForwardMove: 320}
	}
	return cmds
}

func TestSessionPredictsIdenticalWorld(t *testing.T) {
	w := floorWorld()
	sess, err := New(settings.DefaultSettings(), w, nil, movement.NewPlayerState(1, mgl32.Vec3{}), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report, err := sess.Run(forwardCommands(60))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Ticks != 60 || report.Matched != 60 {
		t.Fatalf("expected 60 matched ticks, got %+v", report)
	}
	if report.Divergences != 0 || report.Missing != 0 {
		t.Fatalf("expected no divergences, got %+v", report)
	}
	if sess.ServerState() != sess.ClientState() {
		t.Fatalf("expected contexts to agree: server %+v, client %+v", sess.ServerState(), sess.ClientState())
	}
	if report.Final.Origin.X() <= 100 {
		t.Fatalf("expected player to walk forward, ended at %v", report.Final.Origin)
	}
}

func TestSessionReconcilesMisprediction(t *testing.T) {
	wall := world.Brush{Name: "wall", Box: cube.Box(64, -512, 0, 80, 512, 256)}
	dir := t.TempDir()
	s := settings.DefaultSettings()
	s.Session.RecordPath = filepath.Join(dir, "session.zst")

	sess, err := New(s, floorWorld(wall), floorWorld(), movement.NewPlayerState(1, mgl32.Vec3{}), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report, err := sess.Run(forwardCommands(90))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Divergences == 0 {
		t.Fatalf("expected the missing wall to cause divergences, got %+v", report)
	}
	if report.Reconciled != report.Divergences {
		t.Fatalf("expected every divergence to be reconciled, got %+v", report)
	}
	if report.Matched+report.Divergences != 90 {
		t.Fatalf("expected every tick to be compared, got %+v", report)
	}
	if report.MaxDistance <= 0 {
		t.Fatalf("expected a positive divergence distance, got %v", report.MaxDistance)
	}
	if x := report.Final.Origin.X(); x > 48 {
		t.Fatalf("expected server to be stopped by the wall, ended at x=%v", x)
	}

	rec, err := ReadRecording(s.Session.RecordPath)
	if err != nil {
		t.Fatalf("unexpected error reading recording: %v", err)
	}
	var ticks [2]int
	divergences := 0
	for _, ev := range rec.Events {
		switch ev := ev.(type) {
		case event.TickEvent:
			ticks[ev.Payload.Context]++
		case event.DivergenceEvent:
			divergences++
			if ev.Payload.ServerHash == ev.Payload.ClientHash {
				t.Fatalf("divergence recorded with equal hashes")
			}
		}
	}
	if ticks[event.ContextServer] != 90 || ticks[event.ContextClient] != 90 {
		t.Fatalf("expected 90 ticks per context, got %v", ticks)
	}
	if divergences != report.Divergences {
		t.Fatalf("expected %d recorded divergences, got %d", report.Divergences, divergences)
	}
}

func TestSessionWithoutLatency(t *testing.T) {
	s := settings.DefaultSettings()
	s.Session.Latency = 0
	sess, err := New(s, floorWorld(), nil, movement.NewPlayerState(1, mgl32.Vec3{}), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := sess.Step(forwardCommands(1)[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.History().Len() != 0 {
		t.Fatalf("expected prediction to be acknowledged in the same tick, %d held", sess.History().Len())
	}
}

func TestNewRejectsMissingWorld(t *testing.T) {
	if _, err := New(settings.DefaultSettings(), nil, nil, movement.PlayerState{}, nil); err == nil {
		t.Fatalf("expected error without a world")
	}
}

func TestReadRecordingMissingFile(t *testing.T) {
	if _, err := ReadRecording(filepath.Join(t.TempDir(), "missing.zst")); err == nil {
		t.Fatalf("expected error for missing recording")
	}
}

func TestHashState(t *testing.T) {
	a := movement.NewPlayerState(1, mgl32.Vec3{1, 2, 3})
	b := a
	if HashState(&a) != HashState(&b) {
		t.Fatalf("expected equal states to hash equally")
	}
	b.Origin[2] += 0.001
	if HashState(&a) == HashState(&b) {
		t.Fatalf("expected moved state to hash differently")
	}
	b = a
	b.Stance = movement.StanceDucked
	if HashState(&a) == HashState(&b) {
		t.Fatalf("expected ducked state to hash differently")
	}

	for name, modify := range map[string]func(s *movement.PlayerState){
		"gravity":     func(s *movement.PlayerState) { s.Gravity = 0.5 },
		"max speed":   func(s *movement.PlayerState) { s.MaxSpeed = 100 },
		"dead":        func(s *movement.PlayerState) { s.Dead = true },
		"friction":    func(s *movement.PlayerState) { s.Surface.Friction = 0.2 },
		"jump factor": func(s *movement.PlayerState) { s.Surface.JumpFactor = 2 },
	} {
		b = a
		modify(&b)
		if HashState(&a) == HashState(&b) {
			t.Fatalf("expected %s change to hash differently", name)
		}
	}
}

func TestOrderedMapToString(t *testing.T) {
	m := orderedmap.NewOrderedMap[string, any]()
	m.Set("b", 1)
	m.Set("a", "x")
	if got := OrderedMapToString(*m); got != "[b=1 a=x]" {
		t.Fatalf("unexpected string %q", got)
	}
	if got := OrderedMapToString(*orderedmap.NewOrderedMap[string, any]()); got != "[]" {
		t.Fatalf("unexpected string %q", got)
	}
}
