package bonemap

import (
	"fmt"

	"rig-retarget/internal/diagnostic"
	"rig-retarget/internal/rig"
)

// Diagnostic codes emitted by Validate.
const (
	CodeSkeletonMissing  = "skeleton_missing"
	CodeSourceBoneAbsent = "bone_missing_on_source"
	CodeTargetBoneAbsent = "bone_missing_on_target"
	CodeRootAbsent       = "root_missing"
	CodeToggleAbsent     = "toggle_missing"
	CodeTogglePropAbsent = "toggle_property_missing"
)

// Validate checks t against a concrete rig pair. A nil skeleton is an error;
// anything the retargeter would silently skip is a warning.
func Validate(t *Table, source, target rig.Skeleton) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	if source == nil {
		res.AddError(CodeSkeletonMissing, "source skeleton is not set", "source", "")
	}

	if target == nil {
		res.AddError(CodeSkeletonMissing, "target skeleton is not set", "target", "")
	}

	if res.HasErrors() {
		return res
	}

	for _, e := range t.entries {
		if _, ok := source.Bone(e.Source); !ok {
			res.AddWarning(CodeSourceBoneAbsent,
				fmt.Sprintf("mapped to %q, entry will be skipped", e.Target), source.Name(), e.Source)
		}

		if _, ok := target.Bone(e.Target); !ok {
			res.AddWarning(CodeTargetBoneAbsent,
				fmt.Sprintf("mapped from %q, entry will be skipped", e.Source), target.Name(), e.Target)
		}
	}

	if _, ok := source.Bone(t.sourceRoot); !ok {
		res.AddWarning(CodeRootAbsent, "source root not found, root motion is not retargeted", source.Name(), t.sourceRoot)
	}

	if _, ok := target.Bone(t.targetRoot); !ok {
		res.AddWarning(CodeRootAbsent, "target root not found, root motion is not retargeted", target.Name(), t.targetRoot)
	}

	for _, limb := range Limbs {
		name := t.toggles[limb]

		b, ok := target.Bone(name)
		if !ok {
			res.AddWarning(CodeToggleAbsent, fmt.Sprintf("%s IK/FK toggle bone not found", limb), target.Name(), name)
			continue
		}

		if _, ok := b.Property(t.toggleProperty); !ok {
			res.AddWarning(CodeTogglePropAbsent,
				fmt.Sprintf("%s toggle has no %q property", limb, t.toggleProperty), target.Name(), name)
		}
	}

	return res
}
