package scenario

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/movement"
	"github.com/oomph-ac/gamemove/oerror"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted run: a brush world, the player's starting state and the inputs it plays.
type Scenario struct {
	Name string `toml:"name" yaml:"name"`
	// TickRate overrides the session tick rate when positive.
	TickRate int       `toml:"tick_rate" yaml:"tick_rate"`
	Brushes  []Brush   `toml:"brushes" yaml:"brushes"`
	Player   Player    `toml:"player" yaml:"player"`
	Segments []Segment `toml:"segments" yaml:"segments"`
}

// Vec is a three component vector as written in scenario files.
type Vec struct {
	X float32 `toml:"x" yaml:"x"`
	Y float32 `toml:"y" yaml:"y"`
	Z float32 `toml:"z" yaml:"z"`
}

// Vec3 converts v to an mgl32.Vec3.
func (v Vec) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Player is the starting state of the player.
type Player struct {
	Slot     int    `toml:"slot" yaml:"slot"`
	Origin   Vec    `toml:"origin" yaml:"origin"`
	Velocity Vec    `toml:"velocity" yaml:"velocity"`
	Angles   Vec    `toml:"angles" yaml:"angles"`
	MoveType string `toml:"move_type" yaml:"move_type"`
	Stance   string `toml:"stance" yaml:"stance"`
}

// Segment holds the same input for a number of ticks.
type Segment struct {
	Ticks   int      `toml:"ticks" yaml:"ticks"`
	Forward float32  `toml:"forward" yaml:"forward"`
	Side    float32  `toml:"side" yaml:"side"`
	Up      float32  `toml:"up" yaml:"up"`
	Buttons []string `toml:"buttons" yaml:"buttons"`
	// Turn is added to the view angles every tick.
	Turn Vec `toml:"turn" yaml:"turn"`
}

// Load reads a TOML or YAML scenario file, chosen by its extension.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerror.New("unable to read scenario file: %v", err)
	}

	sc := &Scenario{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, sc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, sc)
	default:
		return nil, oerror.New("unknown scenario format %q", ext)
	}
	if err != nil {
		return nil, oerror.New("unable to decode scenario %s: %v", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks every name used in the scenario.
func (sc *Scenario) Validate() error {
	if sc.TickRate < 0 {
		return oerror.New("scenario tick rate must not be negative, got %d", sc.TickRate)
	}
	for _, b := range sc.Brushes {
		if _, err := b.contents(); err != nil {
			return err
		}
		if b.Context != "" && b.Context != ContextServer && b.Context != ContextClient {
			return oerror.New("brush %q has unknown context %q", b.Name, b.Context)
		}
	}
	if _, err := ParseMoveType(sc.Player.MoveType); err != nil {
		return err
	}
	if _, err := ParseStance(sc.Player.Stance); err != nil {
		return err
	}
	for i, seg := range sc.Segments {
		if seg.Ticks < 0 {
			return oerror.New("segment %d has negative ticks", i)
		}
		if _, err := ParseButtons(seg.Buttons); err != nil {
			return err
		}
	}
	return nil
}

// InitialState returns the starting player state.
func (sc *Scenario) InitialState() movement.PlayerState {
	p := sc.Player
	s := movement.NewPlayerState(p.Slot, p.Origin.Vec3())
	s.Velocity = p.Velocity.Vec3()
	s.ViewAngles = p.Angles.Vec3()
	if mt, err := ParseMoveType(p.MoveType); err == nil {
		s.MoveType = mt
	}
	if st, err := ParseStance(p.Stance); err == nil {
		s.Stance = st
	}
	return s
}

// Commands expands the segments into one command per tick, numbered from 1, at tickRate ticks per
// second.
func (sc *Scenario) Commands(tickRate int) []movement.MoveCommand {
	var cmds []movement.MoveCommand
	for _, seg := range sc.Segments {
		buttons, _ := ParseButtons(seg.Buttons)
		for range seg.Ticks {
			n := uint64(len(cmds) + 1)
			cmds = append(cmds, movement.MoveCommand{
				Number:      n,
				Time:        float64(n-1) / float64(tickRate),
				ForwardMove: seg.Forward,
				SideMove:    seg.Side,
				UpMove:      seg.Up,
				Buttons:     buttons,
				AngleDelta:  seg.Turn.Vec3(),
			})
		}
	}
	return cmds
}

// ParseMoveType returns the move type named s. An empty name is walking.
func ParseMoveType(s string) (movement.MoveType, error) {
	if s == "" {
		return movement.MoveTypeWalk, nil
	}
	for mt := movement.MoveTypeNone; mt <= movement.MoveTypeObserver; mt++ {
		if strings.EqualFold(mt.String(), s) {
			return mt, nil
		}
	}
	return 0, oerror.New("unknown move type %q", s)
}

// ParseStance returns the stance named s. An empty name is standing.
func ParseStance(s string) (movement.Stance, error) {
	if s == "" {
		return movement.StanceStanding, nil
	}
	for st := movement.StanceStanding; st <= movement.StanceProned; st++ {
		if strings.EqualFold(st.String(), s) {
			return st, nil
		}
	}
	return 0, oerror.New("unknown stance %q", s)
}

var buttonNames = map[string]movement.Buttons{
	"jump":  movement.ButtonJump,
	"duck":  movement.ButtonDuck,
	"prone": movement.ButtonProne,
}

// ParseButtons returns the union of the named buttons.
func ParseButtons(names []string) (movement.Buttons, error) {
	var b movement.Buttons
	for _, name := range names {
		v, ok := buttonNames[strings.ToLower(name)]
		if !ok {
			return 0, oerror.New("unknown button %q", name)
		}
		b |= v
	}
	return b, nil
}
