package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/event"
	"github.com/oomph-ac/gamemove/movement"
	"github.com/oomph-ac/gamemove/oerror"
	"github.com/oomph-ac/gamemove/settings"
	"github.com/oomph-ac/gamemove/worker"
	"github.com/sirupsen/logrus"
)

// simulation is one execution context of a session. It owns its predictor, and with it its interval
// table, so that contexts never share mutable state.
type simulation struct {
	ctx       event.Context
	predictor *movement.Predictor
	state     movement.PlayerState
	hash      uint64
	last      movement.Result
}

func (sim *simulation) advance(cmd movement.MoveCommand, dt float32) {
	sim.last = sim.predictor.Advance(&sim.state, cmd, dt)
	sim.hash = HashState(&sim.state)
}

// Session runs a stream of commands through an authoritative (server) context and a predicting
// (client) context. The client runs every command as soon as it is issued, while the server runs it
// a configured amount of ticks later. Once the server has run a command, the prediction the client
// made for it is compared with the authoritative result, and the client is corrected when the two
// differ.
type Session struct {
	dt      float32
	latency int

	server, client *simulation
	history        *History
	pending        []movement.MoveCommand

	recorder *Recorder
	hub      *sentry.Hub
	log      logrus.FieldLogger

	report Report
}

// New creates a session starting both contexts at initial. The client context collides against
// clientWorld, or serverWorld if clientWorld is nil.
func New(s settings.Settings, serverWorld, clientWorld collision.Provider, initial movement.PlayerState, log logrus.FieldLogger) (*Session, error) {
	if err := s.Validate(); err != nil {
		return nil, oerror.New("invalid settings: %v", err)
	}
	if serverWorld == nil {
		return nil, oerror.New("session needs an authoritative world")
	}
	if clientWorld == nil {
		clientWorld = serverWorld
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	sess := &Session{
		dt:      1 / float32(s.Session.TickRate),
		latency: s.Session.Latency,
		server: &simulation{
			ctx:       event.ContextServer,
			predictor: movement.New(serverWorld, s, log.WithField("context", "server")),
			state:     initial,
		},
		client: &simulation{
			ctx:       event.ContextClient,
			predictor: movement.New(clientWorld, s, log.WithField("context", "client")),
			state:     initial,
		},
		history: NewHistory(s.Session.HistorySize),
		log:     log,
	}
	sess.server.hash = HashState(&sess.server.state)
	sess.client.hash = sess.server.hash

	if s.Session.SentryDSN != "" {
		sess.hub = sentry.CurrentHub().Clone()
		sess.hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetTag("slot", fmt.Sprint(initial.Slot))
		})
	}
	if s.Session.RecordPath != "" {
		rec, err := StartRecording(s.Session.RecordPath)
		if err != nil {
			return nil, err
		}
		sess.recorder = rec
	}
	return sess, nil
}

// FrameTime returns the duration of a tick in seconds.
func (s *Session) FrameTime() float32 {
	return s.dt
}

// ServerState returns the authoritative player state.
func (s *Session) ServerState() movement.PlayerState {
	return s.server.state
}

// ClientState returns the predicted player state.
func (s *Session) ClientState() movement.PlayerState {
	return s.client.state
}

// History returns the predictions the server has not run yet.
func (s *Session) History() *History {
	return s.history
}

// Run steps every command, then finishes the session.
func (s *Session) Run(cmds []movement.MoveCommand) (Report, error) {
	for _, cmd := range cmds {
		if err := s.Step(cmd); err != nil {
			s.Finish()
			return s.report, err
		}
	}
	return s.Finish()
}

// Step has the client predict cmd, and the server run the command that has waited out the latency.
// Both contexts run concurrently.
func (s *Session) Step(cmd movement.MoveCommand) error {
	s.pending = append(s.pending, cmd)

	jobs := []func(){func() { s.client.advance(cmd, s.dt) }}
	var (
		serverCmd movement.MoveCommand
		due       = len(s.pending) > s.latency
	)
	if due {
		serverCmd = s.pending[0]
		s.pending = s.pending[1:]
		jobs = append(jobs, func() { s.server.advance(serverCmd, s.dt) })
	}
	if err := worker.Run(jobs...); err != nil {
		return oerror.New("tick %d failed: %v", cmd.Number, err)
	}

	s.history.Append(Prediction{Command: cmd, State: s.client.state, Hash: s.client.hash})
	s.record(s.client, cmd)
	if due {
		s.record(s.server, serverCmd)
		s.acknowledge(serverCmd)
	}
	return nil
}

// Finish runs every command the server has not run yet and stops the recording. It returns the
// report of the whole session.
func (s *Session) Finish() (Report, error) {
	for len(s.pending) > 0 {
		cmd := s.pending[0]
		s.pending = s.pending[1:]
		if err := worker.Run(func() { s.server.advance(cmd, s.dt) }); err != nil {
			return s.report, oerror.New("tick %d failed: %v", cmd.Number, err)
		}
		s.record(s.server, cmd)
		s.acknowledge(cmd)
	}

	s.report.Final = s.server.state
	if s.hub != nil {
		s.hub.Flush(time.Second * 5)
	}
	if s.recorder != nil {
		rec := s.recorder
		s.recorder = nil
		if err := rec.Stop(); err != nil {
			return s.report, err
		}
	}
	return s.report, nil
}

func (s *Session) acknowledge(cmd movement.MoveCommand) {
	s.report.Ticks++
	if s.server.last.Stuck {
		s.report.Stuck++
	}

	pred, ok := s.history.Acknowledge(cmd.Number)
	if !ok {
		s.report.Missing++
		s.log.Debugf("no prediction held for command %d", cmd.Number)
		return
	}
	if pred.Hash == s.server.hash {
		s.report.Matched++
		return
	}
	s.diverged(cmd, pred)
}

// diverged reports a prediction that did not match the server, then rewinds the client to the server
// state and replays the predictions the server has not run yet.
func (s *Session) diverged(cmd movement.MoveCommand, pred Prediction) {
	dist := s.server.state.Origin.Sub(pred.State.Origin).Len()
	s.report.Divergences++
	s.report.MaxDistance = max(s.report.MaxDistance, dist)

	extraData := orderedmap.NewOrderedMap[string, any]()
	extraData.Set("cmd", cmd.Number)
	extraData.Set("dist", dist)
	extraData.Set("server", s.server.state.Origin)
	extraData.Set("client", pred.State.Origin)
	extraData.Set("serverStance", s.server.state.Stance)
	extraData.Set("clientStance", pred.State.Stance)
	extraDatString := OrderedMapToString(*extraData)
	s.log.Warnf("prediction diverged %s", extraDatString)

	if s.hub != nil {
		s.hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("command", fmt.Sprint(cmd.Number))
			scope.SetExtra("divergence", extraDatString)
			s.hub.CaptureMessage("prediction diverged")
		})
	}
	if s.recorder != nil {
		ev := event.DivergenceEvent{Payload: event.DivergencePayload{
			Command:    cmd.Number,
			ServerHash: s.server.hash,
			ClientHash: pred.Hash,
			Distance:   dist,
		}}
		ev.EvTime = int64(cmd.Time * 1e9)
		s.recorder.Record(ev)
	}
	s.reconcile()
}

func (s *Session) reconcile() {
	s.client.state = s.server.state
	s.client.hash = s.server.hash
	*s.client.predictor.Intervals = *s.server.predictor.Intervals

	for i, p := range s.history.All() {
		s.client.advance(p.Command, s.dt)
		p.State, p.Hash = s.client.state, s.client.hash
		s.history.Set(i, p)
	}
	s.report.Reconciled++
}

func (s *Session) record(sim *simulation, cmd movement.MoveCommand) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(event.NewTickEvent(sim.ctx, cmd, &sim.state, sim.hash))
}

// OrderedMapToString formats data as "[key=value key=value]", keeping the order of the keys.
func OrderedMapToString(data orderedmap.OrderedMap[string, any]) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, key := range data.Keys() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v, _ := data.Get(key)
		fmt.Fprintf(&sb, "%s=%v", key, v)
	}
	sb.WriteByte(']')
	return sb.String()
}
