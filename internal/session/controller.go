package session

import (
	"errors"
	"fmt"
	"log/slog"

	"rig-retarget/internal/bake"
	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/ikfk"
	"rig-retarget/internal/rig"
	"rig-retarget/internal/statebag"
	"rig-retarget/internal/synth"
)

var (
	ErrNotConfigured   = errors.New("session not configured")
	ErrRetargetActive  = errors.New("retargeting is enabled")
	ErrModeUnavailable = errors.New("IK/FK mode cannot be changed now")
)

// Resolver finds scene objects by name.
type Resolver interface {
	Skeleton(name string) (rig.Skeleton, bool)
	LookupAction(name string) (rig.Action, bool)
}

// Controller is the retarget session of one scene.
type Controller struct {
	host    rig.Host
	table   *bonemap.Table
	logger  *slog.Logger
	state   *ikfk.State
	machine *ikfk.Machine
	synth   *synth.Synthesizer
	baker   *bake.Orchestrator

	source       rig.Skeleton
	target       rig.Skeleton
	sourceAction rig.Action
	targetAction rig.Action
	enabled      bool
	mode         ikfk.Mode
}

// New returns an unconfigured session on host. A nil table means
// bonemap.Default, a nil logger discards output.
func New(host rig.Host, table *bonemap.Table, logger *slog.Logger) *Controller {
	if table == nil {
		table = bonemap.Default()
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	state := ikfk.NewState()
	machine := ikfk.NewMachine(table, host, &state, logger)

	return &Controller{
		host:    host,
		table:   table,
		logger:  logger,
		state:   &state,
		machine: machine,
		synth:   synth.New(table, host, machine, logger),
		baker:   bake.New(table, host, logger),
		mode:    ikfk.Mixed,
	}
}

// Source returns the source skeleton, or nil.
func (c *Controller) Source() rig.Skeleton { return c.source }

// Target returns the target skeleton, or nil.
func (c *Controller) Target() rig.Skeleton { return c.target }

// SourceAction returns the action baked from, or nil.
func (c *Controller) SourceAction() rig.Action { return c.sourceAction }

// TargetAction returns the action baked into, or nil.
func (c *Controller) TargetAction() rig.Action { return c.targetAction }

// Enabled reports whether retarget constraints are live.
func (c *Controller) Enabled() bool { return c.enabled }

// Mode returns the IK/FK selector.
func (c *Controller) Mode() ikfk.Mode { return c.mode }

// State returns the IK/FK state record.
func (c *Controller) State() ikfk.State { return *c.state }

// Table returns the bone table in use.
func (c *Controller) Table() *bonemap.Table { return c.table }

// SetSource selects the source skeleton. Its bound action becomes the
// source action unless one is already selected.
func (c *Controller) SetSource(skel rig.Skeleton) error {
	if c.enabled {
		return fmt.Errorf("%w: disable it before changing the source", ErrRetargetActive)
	}

	c.source = skel

	if c.sourceAction == nil && skel != nil {
		c.sourceAction = skel.Action()
	}

	return nil
}

// SetTarget selects the target skeleton. Switching to another skeleton
// forgets the recorded target action.
func (c *Controller) SetTarget(skel rig.Skeleton) error {
	if c.enabled {
		return fmt.Errorf("%w: disable it before changing the target", ErrRetargetActive)
	}

	if !sameObject(c.target, skel) {
		c.targetAction = nil
	}

	c.target = skel

	return nil
}

// SetSourceAction selects the action to bake from.
func (c *Controller) SetSourceAction(act rig.Action) { c.sourceAction = act }

// SetTargetAction selects the action to bake into. A nil action makes the
// next bake create a new one.
func (c *Controller) SetTargetAction(act rig.Action) { c.targetAction = act }

// OverwriteTarget returns the action the next bake would overwrite, or nil
// when it creates a new one.
func (c *Controller) OverwriteTarget() rig.Action { return c.targetAction }

// SetEnabled enables or disables retargeting.
func (c *Controller) SetEnabled(on bool) error {
	if on {
		return c.Enable()
	}

	return c.Disable()
}

// Enable creates the retarget constraints and switches the target to FK.
func (c *Controller) Enable() error {
	if err := c.require(true); err != nil {
		return err
	}

	if _, err := c.synth.Apply(c.source, c.target); err != nil {
		return fmt.Errorf("enable retargeting: %w", err)
	}

	c.enabled = true
	c.mode = c.machine.Mode()

	return nil
}

// Disable removes the retarget constraints and restores the IK/FK mode
// selected before Enable.
func (c *Controller) Disable() error {
	if err := c.require(false); err != nil {
		return err
	}

	if _, err := c.synth.Remove(c.target); err != nil {
		return fmt.Errorf("disable retargeting: %w", err)
	}

	c.enabled = false
	c.mode = c.machine.Mode()

	return nil
}

// SetMode switches the target rig's limbs to m. The host must already be in
// pose mode; otherwise nothing changes and ErrModeUnavailable is returned.
func (c *Controller) SetMode(m ikfk.Mode) error {
	if c.enabled {
		return fmt.Errorf("%w: %w", ErrModeUnavailable, ErrRetargetActive)
	}

	if c.target == nil {
		return fmt.Errorf("%w: target skeleton missing", ErrNotConfigured)
	}

	applied, err := c.machine.Transition(c.target, m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrModeUnavailable, err)
	}

	if !applied {
		return fmt.Errorf("%w: not in pose mode", ErrModeUnavailable)
	}

	c.mode = m

	return nil
}

// Bake keys the target rig from the live constraints. The produced action
// becomes the target action when none was recorded.
func (c *Controller) Bake() (*bake.Result, error) {
	if err := c.require(true); err != nil {
		return nil, err
	}

	res, err := c.baker.Bake(bake.Request{
		Source:       c.source,
		Target:       c.target,
		SourceAction: c.sourceAction,
		TargetAction: c.targetAction,
	})
	if err != nil {
		return nil, err
	}

	if c.targetAction == nil {
		c.targetAction = res.Action
	}

	return res, nil
}

func (c *Controller) require(source bool) error {
	switch {
	case source && c.source == nil:
		return fmt.Errorf("%w: source skeleton missing", ErrNotConfigured)
	case c.target == nil:
		return fmt.Errorf("%w: target skeleton missing", ErrNotConfigured)
	}

	return nil
}

// Snapshot returns the persisted form of the session.
func (c *Controller) Snapshot(scene string) statebag.Record {
	return statebag.Record{
		Scene:        scene,
		Source:       nameOf(c.source),
		SourceAction: nameOf(c.sourceAction),
		Target:       nameOf(c.target),
		TargetAction: nameOf(c.targetAction),
		Enabled:      c.enabled,
		Mode:         c.mode,
		IKFK:         *c.state,
	}
}

// Restore loads a persisted session. Names r cannot resolve are dropped
// with a warning.
func (c *Controller) Restore(rec statebag.Record, r Resolver) {
	c.source = lookup(c, r.Skeleton, "source", rec.Source)
	c.target = lookup(c, r.Skeleton, "target", rec.Target)
	c.sourceAction = lookup(c, r.LookupAction, "source action", rec.SourceAction)
	c.targetAction = lookup(c, r.LookupAction, "target action", rec.TargetAction)

	c.enabled = rec.Enabled && c.target != nil
	if rec.Enabled && !c.enabled {
		c.logger.Warn("retargeting was enabled on a missing target", "scene", rec.Scene, "target", rec.Target)
	}

	c.mode = rec.Mode
	if c.mode == "" {
		c.mode = ikfk.Mixed
	}

	*c.state = rec.IKFK
	if c.state.Previous == "" {
		c.state.Previous = ikfk.Mixed
	}
}

func lookup[T any](c *Controller, find func(string) (T, bool), role, name string) T {
	var zero T

	if name == "" {
		return zero
	}

	v, ok := find(name)
	if !ok {
		c.logger.Warn("stored "+role+" not found in scene", "name", name)
		return zero
	}

	return v
}

type named interface{ Name() string }

func nameOf(v named) string {
	if v == nil {
		return ""
	}

	return v.Name()
}

func sameObject(a, b rig.Object) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Name() == b.Name()
}
