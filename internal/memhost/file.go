package memhost

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"rig-retarget/internal/rig"
)

var ErrUnknownReference = errors.New("unknown reference")

// Vec is a YAML friendly [x, y, z] triple.
type Vec [3]float64

func (v Vec) toR3() r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

func vecOf(v r3.Vec) Vec { return Vec{v.X, v.Y, v.Z} }

// SceneFile is the YAML representation of a scene.
type SceneFile struct {
	Name      string         `yaml:"name"`
	Active    string         `yaml:"active,omitempty"`
	Objects   []ObjectFile   `yaml:"objects,omitempty"`
	Armatures []ArmatureFile `yaml:"armatures,omitempty"`
	Actions   []ActionFile   `yaml:"actions,omitempty"`
}

// ObjectFile describes a plain object.
type ObjectFile struct {
	Name string   `yaml:"name"`
	Kind Kind     `yaml:"kind"`
	Mode rig.Mode `yaml:"mode,omitempty"`
}

// ArmatureFile describes an armature.
type ArmatureFile struct {
	Name        string           `yaml:"name"`
	Mode        rig.Mode         `yaml:"mode,omitempty"`
	Action      string           `yaml:"action,omitempty"`
	Collections []CollectionFile `yaml:"collections,omitempty"`
	Bones       []BoneFile       `yaml:"bones"`
}

// CollectionFile describes a bone collection.
type CollectionFile struct {
	Name    string `yaml:"name"`
	Visible bool   `yaml:"visible"`
	Solo    bool   `yaml:"solo,omitempty"`
}

// BoneFile describes a pose bone.
type BoneFile struct {
	Name        string             `yaml:"name"`
	Head        Vec                `yaml:"head,flow"`
	Tail        Vec                `yaml:"tail,flow"`
	Hidden      bool               `yaml:"hidden,omitempty"`
	Selected    bool               `yaml:"selected,omitempty"`
	Collections []string           `yaml:"collections,omitempty,flow"`
	Props       map[string]float64 `yaml:"props,omitempty"`
	Constraints []ConstraintFile   `yaml:"constraints,omitempty"`
}

// ConstraintFile describes a bone constraint.
type ConstraintFile struct {
	Name        string        `yaml:"name"`
	Kind        string        `yaml:"kind"`
	Target      string        `yaml:"target"`
	Subtarget   string        `yaml:"subtarget"`
	TargetSpace rig.Space     `yaml:"target_space,omitempty"`
	OwnerSpace  rig.Space     `yaml:"owner_space,omitempty"`
	Axes        string        `yaml:"axes,omitempty"`
	HeadTail    float64       `yaml:"head_tail,omitempty"`
	TrackAxis   rig.TrackAxis `yaml:"track_axis,omitempty"`
}

// ActionFile describes an action.
type ActionFile struct {
	Name   string               `yaml:"name"`
	Start  int                  `yaml:"start"`
	End    int                  `yaml:"end"`
	Tracks map[string][]KeyFile `yaml:"tracks,omitempty"`
}

// KeyFile describes one pose sample.
type KeyFile struct {
	Frame int `yaml:"frame"`
	Head  Vec `yaml:"head,flow"`
	Tail  Vec `yaml:"tail,flow"`
}

// LoadFile reads a scene from a YAML file.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}

	return Parse(data)
}

// Parse builds a scene from YAML data.
func Parse(data []byte) (*Scene, error) {
	var f SceneFile

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}

	return FromFile(&f)
}

// FromFile builds a scene from its file representation.
func FromFile(f *SceneFile) (*Scene, error) {
	name := f.Name
	if name == "" {
		name = "Scene"
	}

	s := NewScene(name)

	for _, af := range f.Actions {
		a := s.AddAction(af.Name, af.Start, af.End)
		for bone, keys := range af.Tracks {
			for _, k := range keys {
				a.SetKey(bone, Key{Frame: k.Frame, Head: k.Head.toR3(), Tail: k.Tail.toR3()})
			}
		}
	}

	for _, of := range f.Objects {
		o, err := s.AddObject(of.Name, of.Kind)
		if err != nil {
			return nil, err
		}

		if of.Mode != "" {
			if err := o.setMode(of.Mode); err != nil {
				return nil, err
			}
		}
	}

	for i := range f.Armatures {
		if err := s.loadArmature(&f.Armatures[i]); err != nil {
			return nil, err
		}
	}

	if f.Active != "" {
		obj := s.Object(f.Active)
		if obj == nil {
			return nil, fmt.Errorf("%w: active object %q", ErrUnknownReference, f.Active)
		}

		s.active = obj
	}

	return s, nil
}

func (s *Scene) loadArmature(af *ArmatureFile) error {
	arm, err := s.AddArmature(af.Name)
	if err != nil {
		return err
	}

	if af.Mode != "" {
		if err := arm.setMode(af.Mode); err != nil {
			return err
		}
	}

	if af.Action != "" {
		act, ok := s.actions[af.Action]
		if !ok {
			return fmt.Errorf("%w: action %q on %q", ErrUnknownReference, af.Action, af.Name)
		}

		arm.action = act
	}

	for _, cf := range af.Collections {
		c := arm.AddCollection(cf.Name)
		c.visible = cf.Visible
		c.solo = cf.Solo
	}

	for _, bf := range af.Bones {
		b := arm.AddBone(bf.Name, bf.Head.toR3(), bf.Tail.toR3(), bf.Collections...)
		b.hidden = bf.Hidden
		b.selected = bf.Selected

		for k, v := range bf.Props {
			b.props[k] = v
		}

		for _, cf := range bf.Constraints {
			c, err := constraintFromFile(cf)
			if err != nil {
				return fmt.Errorf("bone %q: %w", bf.Name, err)
			}

			// Names are stored verbatim; they were unique when saved.
			b.constraints = append(b.constraints, c)
		}
	}

	return nil
}

func constraintFromFile(cf ConstraintFile) (rig.Constraint, error) {
	c := rig.Constraint{
		Name:        cf.Name,
		Target:      cf.Target,
		Subtarget:   cf.Subtarget,
		TargetSpace: cf.TargetSpace,
		OwnerSpace:  cf.OwnerSpace,
		HeadTail:    cf.HeadTail,
		TrackAxis:   cf.TrackAxis,
	}

	switch cf.Kind {
	case rig.KindDampedTrack.String():
		c.Kind = rig.KindDampedTrack
	case rig.KindCopyLocation.String():
		c.Kind = rig.KindCopyLocation
	default:
		return rig.Constraint{}, fmt.Errorf("%w: %q", ErrUnsupportedConstraint, cf.Kind)
	}

	axes, err := parseAxes(cf.Axes)
	if err != nil {
		return rig.Constraint{}, err
	}

	c.Axes = axes

	return c, nil
}

// parseAxes reads "XZ" style masks. An empty string or "-" is no axis.
func parseAxes(s string) (rig.Axes, error) {
	var axes rig.Axes

	for _, r := range strings.ToUpper(strings.TrimSpace(s)) {
		switch r {
		case 'X':
			axes |= rig.AxisX
		case 'Y':
			axes |= rig.AxisY
		case 'Z':
			axes |= rig.AxisZ
		case '-':
		default:
			return 0, fmt.Errorf("invalid axis %q in %q", r, s)
		}
	}

	return axes, nil
}

// ToFile returns the file representation of the scene.
func (s *Scene) ToFile() *SceneFile {
	f := &SceneFile{Name: s.name}
	if s.active != nil {
		f.Active = s.active.Name()
	}

	for _, a := range s.Actions() {
		af := ActionFile{Name: a.name, Start: a.start, End: a.end}
		for _, bone := range a.Bones() {
			if af.Tracks == nil {
				af.Tracks = map[string][]KeyFile{}
			}

			for _, k := range a.tracks[bone] {
				af.Tracks[bone] = append(af.Tracks[bone], KeyFile{Frame: k.Frame, Head: vecOf(k.Head), Tail: vecOf(k.Tail)})
			}
		}

		f.Actions = append(f.Actions, af)
	}

	for _, o := range s.objects {
		switch obj := o.(type) {
		case *Armature:
			f.Armatures = append(f.Armatures, armatureToFile(obj))
		case *Object:
			f.Objects = append(f.Objects, ObjectFile{Name: obj.name, Kind: obj.kind, Mode: obj.mode})
		}
	}

	return f
}

func armatureToFile(a *Armature) ArmatureFile {
	af := ArmatureFile{Name: a.name, Mode: a.mode}
	if a.action != nil {
		af.Action = a.action.name
	}

	for _, c := range a.collections {
		af.Collections = append(af.Collections, CollectionFile{Name: c.name, Visible: c.visible, Solo: c.solo})
	}

	for _, b := range a.bones {
		bf := BoneFile{
			Name:        b.name,
			Head:        vecOf(b.head),
			Tail:        vecOf(b.tail),
			Hidden:      b.hidden,
			Selected:    b.selected,
			Collections: b.collections,
		}

		if len(b.props) > 0 {
			bf.Props = b.props
		}

		for _, c := range b.constraints {
			bf.Constraints = append(bf.Constraints, ConstraintFile{
				Name:        c.Name,
				Kind:        c.Kind.String(),
				Target:      c.Target,
				Subtarget:   c.Subtarget,
				TargetSpace: c.TargetSpace,
				OwnerSpace:  c.OwnerSpace,
				Axes:        c.Axes.String(),
				HeadTail:    c.HeadTail,
				TrackAxis:   c.TrackAxis,
			})
		}

		af.Bones = append(af.Bones, bf)
	}

	return af
}

// Marshal serializes a scene to YAML.
func Marshal(s *Scene) ([]byte, error) {
	return yaml.Marshal(s.ToFile())
}

// WriteFile writes a scene to path.
func WriteFile(s *Scene, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scene %s: %w", path, err)
	}

	return nil
}
