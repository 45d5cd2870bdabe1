package bake

import (
	"errors"
	"fmt"
	"log/slog"

	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/posectx"
	"rig-retarget/internal/rig"
)

var (
	ErrNoSkeleton     = errors.New("skeleton not set")
	ErrNoSourceAction = errors.New("source skeleton has no action")
)

// Request describes one bake. SourceAction and TargetAction are optional
// overrides; a TargetAction makes the bake overwrite that action.
type Request struct {
	Source       rig.Skeleton
	Target       rig.Skeleton
	SourceAction rig.Action
	TargetAction rig.Action
}

// Result describes a completed bake.
type Result struct {
	Action     rig.Action
	Overwrite  bool
	FrameStart int
	FrameEnd   int
	Bones      []string
}

// Orchestrator runs bakes against a host.
type Orchestrator struct {
	table  *bonemap.Table
	host   rig.Host
	guard  *posectx.Guard
	logger *slog.Logger
}

// New returns an orchestrator. A nil table means bonemap.Default, a nil
// logger discards output.
func New(table *bonemap.Table, host rig.Host, logger *slog.Logger) *Orchestrator {
	if table == nil {
		table = bonemap.Default()
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Orchestrator{
		table:  table,
		host:   host,
		guard:  posectx.New(host, logger),
		logger: logger,
	}
}

// Bake keys the target rig's mapped controls and root over the source
// action's frame range.
func (o *Orchestrator) Bake(req Request) (res *Result, err error) {
	if req.Source == nil || req.Target == nil {
		return nil, ErrNoSkeleton
	}

	if req.SourceAction != nil {
		prev := req.Source.Action()
		req.Source.SetAction(req.SourceAction)

		defer req.Source.SetAction(prev)
	}

	overwrite := false

	if req.TargetAction != nil {
		prev := req.Target.Action()
		req.Target.SetAction(req.TargetAction)
		overwrite = true

		defer func() {
			if err != nil {
				req.Target.SetAction(prev)
			}
		}()
	}

	act := req.Source.Action()
	if act == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSourceAction, req.Source.Name())
	}

	start, end := act.FrameRange()

	err = o.guard.Do(req.Target, func() error {
		vis := posectx.EnsureBonesVisible(req.Target)
		defer posectx.RestoreBones(req.Target, vis)

		bones := o.selectBones(req.Target)

		baked, err := o.host.Bake(rig.BakeOptions{
			FrameStart:       start,
			FrameEnd:         end,
			Step:             1,
			OnlySelected:     true,
			VisualKeying:     true,
			UseCurrentAction: overwrite,
			Channels:         []rig.Channel{rig.ChannelPose},
		})
		if err != nil {
			return fmt.Errorf("bake %q: %w", req.Target.Name(), err)
		}

		res = &Result{
			Action:     baked,
			Overwrite:  overwrite,
			FrameStart: start,
			FrameEnd:   end,
			Bones:      bones,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("baked retarget",
		"target", req.Target.Name(),
		"action", res.Action.Name(),
		"frames", fmt.Sprintf("%d-%d", start, end),
		"bones", len(res.Bones),
		"overwrite", overwrite,
	)

	return res, nil
}

// selectBones selects the target root and every mapped control present on
// skel. Everything else was deselected by EnsureBonesVisible.
func (o *Orchestrator) selectBones(skel rig.Skeleton) []string {
	names := append([]string{o.table.TargetRoot()}, o.table.TargetBones()...)
	selected := make([]string, 0, len(names))

	for _, name := range names {
		b, ok := skel.Bone(name)
		if !ok {
			o.logger.Debug("bake skips missing bone", "rig", skel.Name(), "bone", name)
			continue
		}

		b.SetSelected(true)
		selected = append(selected, name)
	}

	return selected
}
