package bonemap

import (
	"errors"
	"fmt"
	"slices"

	"rig-retarget/internal/common"
)

const (
	// DefaultTag prefixes the name of every constraint the retargeter owns.
	DefaultTag = "MIXAMO_RETARGET"
	// DefaultToggleProperty is the Rigify custom property holding a limb's IK/FK blend.
	DefaultToggleProperty = "IK_FK"
	// DefaultSourceRoot is the Mixamo hip bone carrying root motion.
	DefaultSourceRoot = "mixamorig:Hips"
	// DefaultTargetRoot is the Rigify root control.
	DefaultTargetRoot = "root"
)

var (
	ErrEmptyBoneName   = errors.New("empty bone name")
	ErrDuplicateSource = errors.New("source bone mapped more than once")
	ErrDuplicateTarget = errors.New("target bone mapped more than once")
	ErrUnknownLimb     = errors.New("unknown limb")
)

// Limb identifies one of the four Rigify limbs with an IK/FK switch.
type Limb string

const (
	LeftArm  Limb = "left_arm"
	RightArm Limb = "right_arm"
	LeftLeg  Limb = "left_leg"
	RightLeg Limb = "right_leg"
)

// Limbs lists every limb in a fixed order.
var Limbs = []Limb{LeftArm, RightArm, LeftLeg, RightLeg}

// Valid reports whether l is one of Limbs.
func (l Limb) Valid() bool {
	return slices.Contains(Limbs, l)
}

// Entry maps one source bone to one target FK control.
type Entry struct {
	Source string
	Target string
}

// Config is the input to New. Zero-valued fields take the defaults.
type Config struct {
	Entries        []Entry
	SourceRoot     string
	TargetRoot     string
	Toggles        map[Limb]string
	ToggleProperty string
	Tag            string
}

// Table is an immutable bone correspondence table.
type Table struct {
	entries        []Entry
	bySource       map[string]string
	sourceRoot     string
	targetRoot     string
	toggles        map[Limb]string
	toggleProperty string
	tag            string
}

// defaultEntries is the Mixamo to Rigify FK mapping.
var defaultEntries = []Entry{
	{"mixamorig:Hips", "torso"},
	{"mixamorig:Spine", "spine_fk"},
	{"mixamorig:Spine1", "spine_fk.002"},
	{"mixamorig:Spine2", "spine_fk.003"},
	{"mixamorig:Neck", "neck"},
	{"mixamorig:Head", "head"},

	{"mixamorig:LeftShoulder", "shoulder.L"},
	{"mixamorig:LeftArm", "upper_arm_fk.L"},
	{"mixamorig:LeftForeArm", "forearm_fk.L"},
	{"mixamorig:LeftHand", "hand_fk.L"},

	{"mixamorig:RightShoulder", "shoulder.R"},
	{"mixamorig:RightArm", "upper_arm_fk.R"},
	{"mixamorig:RightForeArm", "forearm_fk.R"},
	{"mixamorig:RightHand", "hand_fk.R"},

	{"mixamorig:LeftUpLeg", "thigh_fk.L"},
	{"mixamorig:LeftLeg", "shin_fk.L"},
	{"mixamorig:LeftFoot", "foot_fk.L"},
	{"mixamorig:LeftToeBase", "toe_fk.L"},

	{"mixamorig:RightUpLeg", "thigh_fk.R"},
	{"mixamorig:RightLeg", "shin_fk.R"},
	{"mixamorig:RightFoot", "foot_fk.R"},
	{"mixamorig:RightToeBase", "toe_fk.R"},
}

// defaultToggles are the Rigify bones holding each limb's IK/FK property.
var defaultToggles = map[Limb]string{
	LeftArm:  "upper_arm_parent.L",
	RightArm: "upper_arm_parent.R",
	LeftLeg:  "thigh_parent.L",
	RightLeg: "thigh_parent.R",
}

var defaultTable = mustNew(Config{Entries: defaultEntries})

// Default returns the built-in Mixamo to Rigify table.
func Default() *Table {
	return defaultTable
}

func mustNew(cfg Config) *Table {
	t, err := New(cfg)
	if err != nil {
		panic(err)
	}

	return t
}

// New builds a table, filling unset fields with the defaults. Source names
// must be unique, and so must target names.
func New(cfg Config) (*Table, error) {
	t := &Table{
		entries:        slices.Clone(cfg.Entries),
		bySource:       make(map[string]string, len(cfg.Entries)),
		sourceRoot:     orDefault(cfg.SourceRoot, DefaultSourceRoot),
		targetRoot:     orDefault(cfg.TargetRoot, DefaultTargetRoot),
		toggleProperty: orDefault(cfg.ToggleProperty, DefaultToggleProperty),
		tag:            orDefault(cfg.Tag, DefaultTag),
		toggles:        make(map[Limb]string, len(Limbs)),
	}

	for limb, bone := range defaultToggles {
		t.toggles[limb] = bone
	}

	for limb, bone := range cfg.Toggles {
		if !limb.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLimb, limb)
		}

		if bone == "" {
			return nil, fmt.Errorf("%w: toggle for %s", ErrEmptyBoneName, limb)
		}

		t.toggles[limb] = bone
	}

	targets := make([]string, 0, len(t.entries))

	for _, e := range t.entries {
		if e.Source == "" || e.Target == "" {
			return nil, fmt.Errorf("%w: %q -> %q", ErrEmptyBoneName, e.Source, e.Target)
		}

		if _, ok := t.bySource[e.Source]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSource, e.Source)
		}

		t.bySource[e.Source] = e.Target
		targets = append(targets, e.Target)
	}

	if dups := common.Duplicates(targets); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTarget, dups[0])
	}

	return t, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}

// TargetFor returns the target bone mapped from source.
func (t *Table) TargetFor(source string) (string, bool) {
	target, ok := t.bySource[source]
	return target, ok
}

// Entries returns the mapping in declaration order.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}

// TargetBones returns every mapped target bone in declaration order. The
// target root is not included.
func (t *Table) TargetBones() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Target
	}

	return out
}

// SourceRoot returns the source bone whose translation is split between
// torso and root.
func (t *Table) SourceRoot() string { return t.sourceRoot }

// TargetRoot returns the target rig's root bone.
func (t *Table) TargetRoot() string { return t.targetRoot }

// Toggle returns the bone holding the IK/FK property of limb.
func (t *Table) Toggle(limb Limb) string { return t.toggles[limb] }

// Toggles returns a copy of the limb to toggle bone map.
func (t *Table) Toggles() map[Limb]string {
	out := make(map[Limb]string, len(t.toggles))
	for k, v := range t.toggles {
		out[k] = v
	}

	return out
}

// ToggleProperty returns the name of the IK/FK blend property.
func (t *Table) ToggleProperty() string { return t.toggleProperty }

// Tag returns the constraint name marker.
func (t *Table) Tag() string { return t.tag }
