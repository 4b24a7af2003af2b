package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/movement"
)

const tomlScenario = `
name = "wall run"
tick_rate = 30

[[brushes]]
name = "floor"
mins = { x = -512.0, y = -512.0, z = -16.0 }
maxs = { x = 512.0, y = 512.0, z = 0.0 }
surface = "ice"
friction = 0.1

[[brushes]]
name = "wall"
mins = { x = 64.0, y = -512.0, z = 0.0 }
maxs = { x = 80.0, y = 512.0, z = 256.0 }
context = "server"

[[brushes]]
name = "pool"
mins = { x = -256.0, y = -256.0, z = 0.0 }
maxs = { x = -128.0, y = -128.0, z = 64.0 }
contents = ["water", "current_90"]

[player]
slot = 3
origin = { x = 0.0, y = 0.0, z = 0.0 }
angles = { x = 0.0, y = 90.0, z = 0.0 }
stance = "ducked"

[[segments]]
ticks = 2
forward = 320.0
buttons = ["jump", "duck"]

[[segments]]
ticks = 1
side = -100.0
turn = { x = 0.0, y = 5.0, z = 0.0 }
`

const yamlScenario = `
name: ladder
brushes:
  - name: ladder
    mins: {x: 20.0, y: -32.0, z: 0.0}
    maxs: {x: 24.0, y: 32.0, z: 512.0}
    contents: [solid, ladder]
player:
  move_type: noclip
  origin: {x: 1.0, y: 2.0, z: 3.0}
segments:
  - ticks: 4
    up: 50.0
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("unable to write scenario: %v", err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	sc, err := Load(writeScenario(t, "run.toml", tomlScenario))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Name != "wall run" || sc.TickRate != 30 || len(sc.Brushes) != 3 || len(sc.Segments) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}

	state := sc.InitialState()
	if state.Slot != 3 || state.Stance != movement.StanceDucked || state.MoveType != movement.MoveTypeWalk {
		t.Fatalf("unexpected initial state %+v", state)
	}
	if state.ViewAngles != (mgl32.Vec3{0, 90, 0}) {
		t.Fatalf("unexpected view angles %v", state.ViewAngles)
	}

	cmds := sc.Commands(30)
	if len(cmds) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(cmds))
	}
	if cmds[0].Number != 1 || cmds[2].Number != 3 {
		t.Fatalf("expected commands numbered from 1, got %d..%d", cmds[0].Number, cmds[2].Number)
	}
	if cmds[1].Time != 1.0/30 {
		t.Fatalf("expected second command at 1/30s, got %v", cmds[1].Time)
	}
	if !cmds[0].Buttons.Has(movement.ButtonJump|movement.ButtonDuck) || cmds[0].ForwardMove != 320 {
		t.Fatalf("unexpected first command %+v", cmds[0])
	}
	if cmds[2].SideMove != -100 || cmds[2].AngleDelta != (mgl32.Vec3{0, 5, 0}) || cmds[2].Buttons != 0 {
		t.Fatalf("unexpected last command %+v", cmds[2])
	}
}

func TestWorldsSplitByContext(t *testing.T) {
	sc, err := Load(writeScenario(t, "run.toml", tomlScenario))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server, client, err := sc.Worlds()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil {
		t.Fatalf("expected a separate client world")
	}
	if server.Len() != 3 || client.Len() != 2 {
		t.Fatalf("expected 3 server and 2 client brushes, got %d and %d", server.Len(), client.Len())
	}
	if _, ok := client.Brush("wall"); ok {
		t.Fatalf("expected server-only wall to be missing from the client world")
	}

	floor, _ := server.Brush("floor")
	if floor.Surface.Name != "ice" || floor.Surface.Friction != 0.1 || floor.Surface.JumpFactor != 1 {
		t.Fatalf("unexpected floor surface %+v", floor.Surface)
	}
	if floor.Contents != collision.ContentsSolid {
		t.Fatalf("expected floor to default to solid, got %v", floor.Contents)
	}
	pool, _ := server.Brush("pool")
	if pool.Contents != collision.ContentsWater|collision.ContentsCurrent90 {
		t.Fatalf("unexpected pool contents %v", pool.Contents)
	}
	if c := server.PointContents(mgl32.Vec3{-200, -200, 10}); !c.Has(collision.ContentsWater) {
		t.Fatalf("expected water inside the pool, got %v", c)
	}
}

func TestLoadYAML(t *testing.T) {
	sc, err := Load(writeScenario(t, "ladder.yml", yamlScenario))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := sc.InitialState()
	if state.MoveType != movement.MoveTypeNoClip || state.Origin != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("unexpected initial state %+v", state)
	}
	server, client, err := sc.Worlds()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatalf("expected worlds to be shared without context brushes")
	}
	ladder, ok := server.Brush("ladder")
	if !ok || ladder.Contents != collision.ContentsSolid|collision.ContentsLadder {
		t.Fatalf("unexpected ladder brush %+v", ladder)
	}
	if cmds := sc.Commands(60); len(cmds) != 4 || cmds[3].UpMove != 50 {
		t.Fatalf("unexpected commands %+v", cmds)
	}
}

func TestLoadRejectsUnknownNames(t *testing.T) {
	for name, content := range map[string]string{
		"contents.yaml": "brushes:\n  - name: a\n    contents: [lava]\n",
		"button.yaml":   "segments:\n  - ticks: 1\n    buttons: [fire]\n",
		"stance.yaml":   "player:\n  stance: crouched\n",
		"movetype.yaml": "player:\n  move_type: swim\n",
		"context.yaml":  "brushes:\n  - name: a\n    context: both\n",
		"format.json":   "{}",
	} {
		if _, err := Load(writeScenario(t, name, content)); err == nil {
			t.Fatalf("expected %s to be rejected", name)
		}
	}
}
