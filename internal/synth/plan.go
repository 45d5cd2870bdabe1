package synth

import (
	"fmt"

	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/diagnostic"
	"rig-retarget/internal/rig"
)

// Axes driven by the two halves of the root split.
const (
	RootMotionAxes = rig.AxisY
	TorsoAxes      = rig.AllAxes &^ RootMotionAxes
)

// Diagnostic codes emitted while planning.
const (
	CodeSourceSkipped = "source_bone_skipped"
	CodeTargetSkipped = "target_bone_skipped"
	CodeRootSkipped   = "root_split_skipped"
)

// Role says why an operation exists.
type Role int

const (
	// RoleTrack aims a target FK control at its source bone.
	RoleTrack Role = iota
	// RoleTorso copies the horizontal part of root motion to the torso.
	RoleTorso
	// RoleRoot copies the remaining root motion axis to the rig root.
	RoleRoot
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleTrack:
		return "track"
	case RoleTorso:
		return "torso"
	case RoleRoot:
		return "root"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Op is one constraint to create on a target bone.
type Op struct {
	Role       Role
	Owner      string
	Constraint rig.Constraint
}

// Plan is the constraint set for one rig pair.
type Plan struct {
	Ops         []Op
	Diagnostics diagnostic.Diagnostics
}

// Owners returns the target bones touched by the plan, in order.
func (p *Plan) Owners() []string {
	out := make([]string, len(p.Ops))
	for i, op := range p.Ops {
		out[i] = op.Owner
	}

	return out
}

// Plan computes the constraints Apply would create, without touching either
// rig.
func (s *Synthesizer) Plan(source, target rig.Skeleton) *Plan {
	p := &Plan{}
	tag := s.table.Tag()

	for _, e := range s.table.Entries() {
		if _, ok := source.Bone(e.Source); !ok {
			p.Diagnostics.AddInfo(CodeSourceSkipped, fmt.Sprintf("no source bone, %q not driven", e.Target), source.Name(), e.Source)
			continue
		}

		if _, ok := target.Bone(e.Target); !ok {
			p.Diagnostics.AddInfo(CodeTargetSkipped, fmt.Sprintf("no target bone for %q", e.Source), target.Name(), e.Target)
			continue
		}

		c := rig.Constraint{
			Name:        tag,
			Target:      source.Name(),
			Subtarget:   e.Source,
			TargetSpace: rig.SpaceWorld,
			OwnerSpace:  rig.SpaceWorld,
		}

		role := RoleTrack
		if e.Source == s.table.SourceRoot() {
			role = RoleTorso
			c.Kind = rig.KindCopyLocation
			c.Axes = TorsoAxes
		} else {
			c.Kind = rig.KindDampedTrack
			c.HeadTail = 1
			c.TrackAxis = rig.TrackY
		}

		p.Ops = append(p.Ops, Op{Role: role, Owner: e.Target, Constraint: c})
	}

	_, hasTargetRoot := target.Bone(s.table.TargetRoot())
	_, hasSourceRoot := source.Bone(s.table.SourceRoot())

	if !hasTargetRoot || !hasSourceRoot {
		p.Diagnostics.AddInfo(CodeRootSkipped, "root bones missing, root motion not split", target.Name(), s.table.TargetRoot())
		return p
	}

	p.Ops = append(p.Ops, Op{
		Role:  RoleRoot,
		Owner: s.table.TargetRoot(),
		Constraint: rig.Constraint{
			Name:        tag,
			Kind:        rig.KindCopyLocation,
			Target:      source.Name(),
			Subtarget:   s.table.SourceRoot(),
			TargetSpace: rig.SpaceWorld,
			OwnerSpace:  rig.SpaceWorld,
			Axes:        RootMotionAxes,
		},
	})

	return p
}

// tableFor is a guard for the zero Synthesizer.
func tableFor(t *bonemap.Table) *bonemap.Table {
	if t == nil {
		return bonemap.Default()
	}

	return t
}
