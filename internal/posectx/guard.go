package posectx

import (
	"fmt"
	"log/slog"

	"rig-retarget/internal/rig"
)

// Snapshot is the context captured by Enter. It is consumed by the first
// Exit; later calls do nothing.
type Snapshot struct {
	active   rig.Object
	mode     rig.Mode
	released bool
}

// Active returns the object that was active before Enter.
func (s *Snapshot) Active() rig.Object { return s.active }

// Mode returns the context mode before Enter.
func (s *Snapshot) Mode() rig.Mode { return s.mode }

// Guard switches a host into pose context and back.
type Guard struct {
	Host   rig.Host
	Logger *slog.Logger
}

// New returns a guard for host. A nil logger discards output.
func New(host rig.Host, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Guard{Host: host, Logger: logger}
}

// Enter makes skel the active object and puts it in pose mode. When the
// mode switch fails the previous active object is restored and the error
// returned; no snapshot needs releasing in that case.
func (g *Guard) Enter(skel rig.Skeleton) (*Snapshot, error) {
	snap := &Snapshot{
		active: g.Host.ActiveObject(),
		mode:   g.Host.Mode(),
	}

	g.Host.SetActiveObject(skel)

	if skel.Mode() != rig.ModePose {
		if err := g.Host.SetMode(rig.ModePose); err != nil {
			g.Host.SetActiveObject(snap.active)
			return nil, fmt.Errorf("enter pose mode on %q: %w", skel.Name(), err)
		}
	}

	return snap, nil
}

// Exit restores the mode and active object recorded in snap. A failing mode
// restore is logged and swallowed.
func (g *Guard) Exit(snap *Snapshot) {
	if snap == nil || snap.released {
		return
	}

	snap.released = true

	if err := g.Host.SetMode(snap.mode); err != nil {
		g.Logger.Debug("could not restore previous mode", "mode", snap.mode, "error", err)
	}

	g.Host.SetActiveObject(snap.active)
}

// Do runs fn with skel active in pose mode. The previous context is restored
// before Do returns, whatever fn does.
func (g *Guard) Do(skel rig.Skeleton, fn func() error) error {
	snap, err := g.Enter(skel)
	if err != nil {
		return err
	}

	defer g.Exit(snap)

	return fn()
}
