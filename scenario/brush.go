package scenario

import (
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/oerror"
	"github.com/oomph-ac/gamemove/world"
)

const (
	// ContextServer brushes only exist in the authoritative world.
	ContextServer = "server"
	// ContextClient brushes only exist in the predicting world.
	ContextClient = "client"
)

// Brush is a world brush as written in scenario files.
type Brush struct {
	Name string `toml:"name" yaml:"name"`
	Mins Vec    `toml:"mins" yaml:"mins"`
	Maxs Vec    `toml:"maxs" yaml:"maxs"`
	// Contents are content names. An empty list is solid.
	Contents []string `toml:"contents" yaml:"contents"`
	Surface  string   `toml:"surface" yaml:"surface"`
	// Friction and JumpFactor only apply to named surfaces. Zero keeps the value of
	// collision.DefaultSurface.
	Friction   float32 `toml:"friction" yaml:"friction"`
	JumpFactor float32 `toml:"jump_factor" yaml:"jump_factor"`
	Entity     uint32  `toml:"entity" yaml:"entity"`
	// Context limits the brush to one of the worlds of a session. Empty means both.
	Context string `toml:"context" yaml:"context"`
}

var contentNames = map[string]collision.Contents{
	"solid":        collision.ContentsSolid,
	"window":       collision.ContentsWindow,
	"grate":        collision.ContentsGrate,
	"slime":        collision.ContentsSlime,
	"water":        collision.ContentsWater,
	"playerclip":   collision.ContentsPlayerClip,
	"monster":      collision.ContentsMonster,
	"ladder":       collision.ContentsLadder,
	"current_0":    collision.ContentsCurrent0,
	"current_90":   collision.ContentsCurrent90,
	"current_180":  collision.ContentsCurrent180,
	"current_270":  collision.ContentsCurrent270,
	"current_up":   collision.ContentsCurrentUp,
	"current_down": collision.ContentsCurrentDown,
}

// Box returns the volume of the brush.
func (b Brush) Box() cube.BBox {
	return cube.Box(b.Mins.X, b.Mins.Y, b.Mins.Z, b.Maxs.X, b.Maxs.Y, b.Maxs.Z)
}

func (b Brush) contents() (collision.Contents, error) {
	var c collision.Contents
	for _, name := range b.Contents {
		v, ok := contentNames[strings.ToLower(name)]
		if !ok {
			return 0, oerror.New("brush %q has unknown contents %q", b.Name, name)
		}
		c |= v
	}
	return c, nil
}

// WorldBrush converts b to a world brush.
func (b Brush) WorldBrush() (world.Brush, error) {
	c, err := b.contents()
	if err != nil {
		return world.Brush{}, err
	}
	wb := world.Brush{
		Name:     b.Name,
		Box:      b.Box(),
		Contents: c,
		Entity:   collision.Handle(b.Entity),
	}
	if b.Surface != "" {
		wb.Surface = collision.DefaultSurface
		wb.Surface.Name = b.Surface
		if b.Friction != 0 {
			wb.Surface.Friction = b.Friction
		}
		if b.JumpFactor != 0 {
			wb.Surface.JumpFactor = b.JumpFactor
		}
	}
	return wb, nil
}

// Worlds builds the authoritative and predicting worlds of the scenario. The predicting world is nil
// when no brush is limited to one context, in which case both contexts share the authoritative one.
func (sc *Scenario) Worlds() (server, client *world.World, err error) {
	server = world.New()
	split := false
	for _, b := range sc.Brushes {
		if b.Context != "" {
			split = true
			break
		}
	}
	if split {
		client = world.New()
	}

	for _, b := range sc.Brushes {
		wb, err := b.WorldBrush()
		if err != nil {
			return nil, nil, err
		}
		if b.Context != ContextClient {
			if err := server.AddBrush(wb); err != nil {
				return nil, nil, err
			}
		}
		if client != nil && b.Context != ContextServer {
			if err := client.AddBrush(wb); err != nil {
				return nil, nil, err
			}
		}
	}
	return server, client, nil
}
