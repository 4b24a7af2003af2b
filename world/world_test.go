package world

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/game"
)

var playerHull = cube.Box(-16, -16, 0, 16, 16, 72)

func testWorld() *World {
	return New().MustAddBrush(
		Brush{Name: "floor", Box: cube.Box(-512, -512, -64, 512, 512, 0)},
		Brush{Name: "wall", Box: cube.Box(100, -512, 0, 132, 512, 256), Surface: collision.Surface{Name: "metal", Friction: 0.5, JumpFactor: 1}},
		Brush{Name: "pool", Box: cube.Box(-512, -512, 0, -256, 512, 64), Contents: collision.ContentsWater},
	)
}

func sweep(w *World, start, end mgl32.Vec3) collision.Trace {
	return w.Sweep(start, end, playerHull, collision.MaskPlayerSolid, collision.GroupPlayerMovement, collision.NoEntity)
}

func TestAddBrush(t *testing.T) {
	w := testWorld()
	if err := w.AddBrush(Brush{Name: "floor", Box: cube.Box(0, 0, 0, 1, 1, 1)}); err == nil {
		t.Fatalf("expected duplicate brush to be refused")
	}
	if err := w.AddBrush(Brush{Box: cube.Box(0, 0, 0, 1, 1, 1)}); err == nil {
		t.Fatalf("expected unnamed brush to be refused")
	}
	if err := w.AddBrush(Brush{Name: "flat", Box: cube.Box(0, 0, 0, 0, 0, 0)}); err == nil {
		t.Fatalf("expected empty brush to be refused")
	}

	b, ok := w.Brush("floor")
	if !ok || b.Contents != collision.ContentsSolid || b.Entity != collision.WorldEntity || b.Surface != collision.DefaultSurface {
		t.Fatalf("expected defaults to be filled in, got %+v", b)
	}
	if names := w.Brushes(); len(names) != 3 || names[0].Name != "floor" || names[2].Name != "pool" {
		t.Fatalf("expected brushes in insertion order, got %v", names)
	}
	if !w.RemoveBrush("pool") || w.Len() != 2 {
		t.Fatalf("expected pool to be removed")
	}
}

func TestSweepHitsWall(t *testing.T) {
	w := testWorld()
	tr := sweep(w, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{200, 0, 1})
	if tr.Fraction >= 1 || tr.StartSolid {
		t.Fatalf("expected wall to block the sweep, got %+v", tr)
	}
	if tr.Plane.Normal != (mgl32.Vec3{-1, 0, 0}) || tr.Plane.Dist != -100 {
		t.Fatalf("unexpected plane %+v", tr.Plane)
	}
	if gap := 84 - tr.EndPos[0]; gap < game.DistEpsilon-1e-3 || gap > game.DistEpsilon+1e-3 {
		t.Fatalf("expected to stop %v short of the wall, got %v", game.DistEpsilon, gap)
	}
	if tr.Surface.Name != "metal" || tr.Entity != collision.WorldEntity {
		t.Fatalf("expected wall surface and entity, got %+v", tr)
	}
}

func TestSweepAlongFloor(t *testing.T) {
	w := testWorld()
	tr := sweep(w, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{50, 50, 0})
	if tr.Fraction != 1 || tr.EndPos != (mgl32.Vec3{50, 50, 0}) {
		t.Fatalf("expected sliding along the floor surface to be free, got %+v", tr)
	}
}

func TestSweepAwayFromTouchedFace(t *testing.T) {
	w := testWorld()
	tr := sweep(w, mgl32.Vec3{84, 0, 1}, mgl32.Vec3{0, 0, 1})
	if tr.Fraction != 1 || tr.StartSolid {
		t.Fatalf("expected moving away from a touched wall to be free, got %+v", tr)
	}
	tr = sweep(w, mgl32.Vec3{84, 0, 1}, mgl32.Vec3{90, 0, 1})
	if tr.Fraction != 0 {
		t.Fatalf("expected moving into a touched wall to be blocked at once, got %+v", tr)
	}
}

func TestSweepFromSolid(t *testing.T) {
	w := testWorld()
	tr := sweep(w, mgl32.Vec3{110, 0, 10}, mgl32.Vec3{112, 0, 10})
	if !tr.StartSolid || !tr.AllSolid || tr.Fraction != 0 {
		t.Fatalf("expected sweep inside the wall to be all solid, got %+v", tr)
	}
	tr = sweep(w, mgl32.Vec3{110, 0, 10}, mgl32.Vec3{200, 0, 10})
	if !tr.StartSolid || tr.AllSolid {
		t.Fatalf("expected sweep out of the wall to only start solid, got %+v", tr)
	}
	if tr := w.TestBox(mgl32.Vec3{0, 0, -10}, playerHull, collision.MaskPlayerSolid, collision.GroupPlayer, collision.NoEntity); !tr.StartSolid {
		t.Fatalf("expected hull below the floor surface to be embedded")
	}
}

func TestSweepIgnoresFilteredBrushes(t *testing.T) {
	w := testWorld().MustAddBrush(
		Brush{Name: "crate", Box: cube.Box(40, -8, 0, 56, 8, 16), Group: collision.GroupDebris},
		Brush{Name: "door", Box: cube.Box(60, -64, 0, 64, 64, 128), Entity: 7},
	)
	tr := sweep(w, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{80, 0, 1})
	if tr.Entity != 7 {
		t.Fatalf("expected debris to be skipped and the door to block, got %+v", tr)
	}
	tr = w.Sweep(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{80, 0, 1}, playerHull, collision.MaskPlayerSolid, collision.GroupPlayerMovement, 7)
	if tr.Fraction != 1 {
		t.Fatalf("expected ignored entity to be skipped, got %+v", tr)
	}
	tr = w.Sweep(mgl32.Vec3{-300, 0, 1}, mgl32.Vec3{-400, 0, 1}, playerHull, collision.MaskPlayerSolid, collision.GroupPlayerMovement, collision.NoEntity)
	if tr.Fraction != 1 {
		t.Fatalf("expected water not to block a player, got %+v", tr)
	}
}

func TestSweepTieBreaksByInsertionOrder(t *testing.T) {
	w := New().MustAddBrush(
		Brush{Name: "first", Box: cube.Box(50, -64, 0, 60, 0, 64), Entity: 10},
		Brush{Name: "second", Box: cube.Box(50, 0, 0, 60, 64, 64), Entity: 11},
	)
	for i := 0; i < 10; i++ {
		if tr := sweep(w, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{100, 0, 1}); tr.Entity != 10 {
			t.Fatalf("expected the first brush to win the tie, got %v", tr.Entity)
		}
	}
}

func TestPointContents(t *testing.T) {
	w := testWorld()
	if c := w.PointContents(mgl32.Vec3{-300, 0, 10}); c != collision.ContentsWater {
		t.Fatalf("expected water, got %v", c)
	}
	if c := w.PointContents(mgl32.Vec3{0, 0, 10}); c != collision.ContentsEmpty {
		t.Fatalf("expected empty, got %v", c)
	}
	if c := w.PointContents(mgl32.Vec3{0, 0, -1}); !c.Has(collision.ContentsSolid) {
		t.Fatalf("expected solid, got %v", c)
	}
}
