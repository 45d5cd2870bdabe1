package synth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/posectx"
	"rig-retarget/internal/rig"
)

var ErrNoSkeleton = errors.New("skeleton not set")

// ModeIndicator is the IK/FK selector the synthesizer flips to FK while
// retargeting is on.
type ModeIndicator interface {
	BeginRetarget(target rig.Skeleton) error
	EndRetarget(target rig.Skeleton) error
}

// Synthesizer applies and removes retarget constraints.
type Synthesizer struct {
	table  *bonemap.Table
	guard  *posectx.Guard
	modes  ModeIndicator
	logger *slog.Logger
}

// New returns a synthesizer. modes may be nil when no IK/FK switching is
// wanted; a nil table means bonemap.Default.
func New(table *bonemap.Table, host rig.Host, modes ModeIndicator, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Synthesizer{
		table:  tableFor(table),
		guard:  posectx.New(host, logger),
		modes:  modes,
		logger: logger,
	}
}

// Tagged reports whether c was created by a synthesizer using tag.
func Tagged(tag string) func(rig.Constraint) bool {
	return func(c rig.Constraint) bool {
		return strings.HasPrefix(c.Name, tag)
	}
}

// Apply creates the planned constraints on target and switches the rig to
// FK. It returns the executed plan.
func (s *Synthesizer) Apply(source, target rig.Skeleton) (*Plan, error) {
	if source == nil || target == nil {
		return nil, ErrNoSkeleton
	}

	var plan *Plan

	err := s.guard.Do(target, func() error {
		plan = s.Plan(source, target)

		for _, d := range plan.Diagnostics.Infos {
			s.logger.Debug("skipping bone", "code", d.Code, "rig", d.Rig, "bone", d.Bone)
		}

		for _, op := range plan.Ops {
			if err := s.replace(target, op); err != nil {
				return err
			}
		}

		if s.modes != nil {
			if err := s.modes.BeginRetarget(target); err != nil {
				return fmt.Errorf("switch %q to FK: %w", target.Name(), err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("retarget constraints applied", "source", source.Name(), "target", target.Name(), "constraints", len(plan.Ops))

	return plan, nil
}

// replace drops tagged constraints on the op's owner and adds the new one.
func (s *Synthesizer) replace(target rig.Skeleton, op Op) error {
	b, ok := target.Bone(op.Owner)
	if !ok {
		return nil
	}

	b.RemoveConstraints(Tagged(s.table.Tag()))

	if _, err := b.AddConstraint(op.Constraint); err != nil {
		return fmt.Errorf("add %s constraint to %q: %w", op.Constraint.Kind, op.Owner, err)
	}

	return nil
}

// Remove deletes every tagged constraint on target and restores the IK/FK
// mode selected before Apply. It returns the number of constraints removed.
func (s *Synthesizer) Remove(target rig.Skeleton) (int, error) {
	if target == nil {
		return 0, ErrNoSkeleton
	}

	removed := 0

	err := s.guard.Do(target, func() error {
		match := Tagged(s.table.Tag())
		for _, b := range target.Bones() {
			removed += b.RemoveConstraints(match)
		}

		if s.modes != nil {
			if err := s.modes.EndRetarget(target); err != nil {
				return fmt.Errorf("restore IK/FK mode on %q: %w", target.Name(), err)
			}
		}

		return nil
	})
	if err != nil {
		return removed, err
	}

	s.logger.Info("retarget constraints removed", "target", target.Name(), "constraints", removed)

	return removed, nil
}
