package ikfk

import (
	"fmt"
	"log/slog"

	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/rig"
)

// Machine applies mode transitions to a target rig.
type Machine struct {
	table  *bonemap.Table
	host   rig.Host
	state  *State
	logger *slog.Logger
}

// NewMachine returns a machine writing to state. A nil state starts from
// NewState, a nil logger discards output.
func NewMachine(table *bonemap.Table, host rig.Host, state *State, logger *slog.Logger) *Machine {
	if state == nil {
		s := NewState()
		state = &s
	}

	if state.Previous == "" {
		state.Previous = Mixed
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Machine{table: table, host: host, state: state, logger: logger}
}

// State returns the live state record.
func (m *Machine) State() *State { return m.state }

// Mode returns the mode last applied.
func (m *Machine) Mode() Mode { return m.state.Previous }

// Transition moves target to mode to. It reports false without touching
// anything when target is nil or the host is not in pose mode.
func (m *Machine) Transition(target rig.Skeleton, to Mode) (bool, error) {
	if target == nil || m.host.Mode() != rig.ModePose {
		return false, nil
	}

	switch to {
	case IK, FK:
		if m.state.Previous == Mixed {
			m.save(target)
		}

		if err := m.force(target, to.blend()); err != nil {
			return false, err
		}
	case Mixed:
		// Already mixed: the rig's own blends are live and may be newer
		// than the snapshot.
		if m.state.Previous == Mixed {
			break
		}

		if err := m.load(target); err != nil {
			return false, err
		}
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownMode, to)
	}

	m.logger.Debug("ik/fk mode changed", "rig", target.Name(), "from", m.state.Previous, "to", to)
	m.state.Previous = to

	return true, nil
}

// BeginRetarget remembers the current mode and switches target to FK. A
// second call before EndRetarget keeps the first remembered mode.
func (m *Machine) BeginRetarget(target rig.Skeleton) error {
	if m.state.BeforeRetarget == "" {
		m.state.BeforeRetarget = m.state.Previous
	}

	_, err := m.Transition(target, FK)

	return err
}

// EndRetarget switches target back to the mode remembered by BeginRetarget.
func (m *Machine) EndRetarget(target rig.Skeleton) error {
	to := m.state.BeforeRetarget
	if to == "" {
		return nil
	}

	applied, err := m.Transition(target, to)
	if err != nil {
		return err
	}

	if applied {
		m.state.BeforeRetarget = ""
	}

	return nil
}

// toggle returns the toggle bone of limb, or nil when the rig lacks it.
func (m *Machine) toggle(target rig.Skeleton, limb bonemap.Limb) rig.Bone {
	b, ok := target.Bone(m.table.Toggle(limb))
	if !ok {
		m.logger.Debug("ik/fk toggle bone missing", "rig", target.Name(), "limb", limb, "bone", m.table.Toggle(limb))
		return nil
	}

	return b
}

func (m *Machine) save(target rig.Skeleton) {
	prop := m.table.ToggleProperty()

	for _, limb := range bonemap.Limbs {
		b := m.toggle(target, limb)
		if b == nil {
			continue
		}

		if v, ok := b.Property(prop); ok {
			m.state.SetBlend(limb, v)
		}
	}
}

func (m *Machine) load(target rig.Skeleton) error {
	for _, limb := range bonemap.Limbs {
		if err := m.set(target, limb, m.state.Blend(limb)); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine) force(target rig.Skeleton, v float64) error {
	for _, limb := range bonemap.Limbs {
		if err := m.set(target, limb, v); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine) set(target rig.Skeleton, limb bonemap.Limb, v float64) error {
	b := m.toggle(target, limb)
	if b == nil {
		return nil
	}

	if err := b.SetProperty(m.table.ToggleProperty(), v); err != nil {
		return fmt.Errorf("set %s IK/FK on %q: %w", limb, b.Name(), err)
	}

	return nil
}
