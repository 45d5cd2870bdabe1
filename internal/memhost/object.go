package memhost

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"rig-retarget/internal/rig"
)

// Kind is the type of a scene object.
type Kind string

const (
	KindArmature Kind = "ARMATURE"
	KindMesh     Kind = "MESH"
	KindEmpty    Kind = "EMPTY"
)

var supportedModes = map[Kind][]rig.Mode{
	KindArmature: {rig.ModeObject, rig.ModePose, rig.ModeEdit},
	KindMesh:     {rig.ModeObject, rig.ModeEdit, rig.ModeSculpt},
	KindEmpty:    {rig.ModeObject},
}

// Supports reports whether objects of kind k can enter mode m.
func (k Kind) Supports(m rig.Mode) bool {
	return slices.Contains(supportedModes[k], m)
}

// Object is a plain scene object.
type Object struct {
	name string
	kind Kind
	mode rig.Mode
}

// Name implements rig.Object.
func (o *Object) Name() string { return o.name }

// Mode implements rig.Object.
func (o *Object) Mode() rig.Mode { return o.mode }

// Kind returns the object type.
func (o *Object) Kind() Kind { return o.kind }

func (o *Object) base() *Object { return o }

func (o *Object) setMode(m rig.Mode) error {
	if !o.kind.Supports(m) {
		return fmt.Errorf("%w: %s object %q cannot enter %s", ErrUnsupportedMode, o.kind, o.name, m)
	}

	o.mode = m

	return nil
}

// Armature is a skeleton object.
type Armature struct {
	Object

	scene       *Scene
	bones       []*Bone
	collections []*Collection
	action      *Action
}

// Bone implements rig.Skeleton.
func (a *Armature) Bone(name string) (rig.Bone, bool) {
	b := a.PoseBone(name)
	if b == nil {
		return nil, false
	}

	return b, true
}

// PoseBone returns the concrete bone, or nil.
func (a *Armature) PoseBone(name string) *Bone {
	for _, b := range a.bones {
		if b.name == name {
			return b
		}
	}

	return nil
}

// Bones implements rig.Skeleton.
func (a *Armature) Bones() []rig.Bone {
	out := make([]rig.Bone, len(a.bones))
	for i, b := range a.bones {
		out[i] = b
	}

	return out
}

// Collections implements rig.Skeleton.
func (a *Armature) Collections() []rig.Collection {
	out := make([]rig.Collection, len(a.collections))
	for i, c := range a.collections {
		out[i] = c
	}

	return out
}

// Collection returns the named collection, or nil.
func (a *Armature) Collection(name string) *Collection {
	for _, c := range a.collections {
		if c.name == name {
			return c
		}
	}

	return nil
}

// Action implements rig.Skeleton.
func (a *Armature) Action() rig.Action {
	if a.action == nil {
		return nil
	}

	return a.action
}

// SetAction implements rig.Skeleton. Actions from another host are ignored
// unless an action with the same name exists in this scene.
func (a *Armature) SetAction(act rig.Action) {
	if act == nil {
		a.action = nil
		return
	}

	if own, ok := act.(*Action); ok {
		a.action = own
		return
	}

	a.action = a.scene.actions[act.Name()]
}

// AddBone appends a bone with rest head and tail in world space.
func (a *Armature) AddBone(name string, head, tail r3.Vec, collections ...string) *Bone {
	b := &Bone{
		name:        name,
		head:        head,
		tail:        tail,
		collections: collections,
		props:       map[string]float64{},
	}
	a.bones = append(a.bones, b)

	return b
}

// AddCollection appends a visible, non-solo bone collection.
func (a *Armature) AddCollection(name string) *Collection {
	c := &Collection{name: name, visible: true}
	a.collections = append(a.collections, c)

	return c
}

// boneVisible reports whether b is drawn: not hidden and, when it belongs to
// collections, at least one of them shown under the solo rule.
func (a *Armature) boneVisible(b *Bone) bool {
	if b.hidden {
		return false
	}

	if len(b.collections) == 0 {
		return true
	}

	anySolo := slices.ContainsFunc(a.collections, func(c *Collection) bool { return c.solo })

	for _, name := range b.collections {
		c := a.Collection(name)
		if c == nil {
			continue
		}

		if anySolo && !c.solo {
			continue
		}

		if c.visible {
			return true
		}
	}

	return false
}

// Bone is a pose bone.
type Bone struct {
	name        string
	head        r3.Vec
	tail        r3.Vec
	hidden      bool
	selected    bool
	collections []string
	props       map[string]float64
	constraints []rig.Constraint
}

// Name implements rig.Bone.
func (b *Bone) Name() string { return b.name }

// Hidden implements rig.Bone.
func (b *Bone) Hidden() bool { return b.hidden }

// SetHidden implements rig.Bone.
func (b *Bone) SetHidden(hidden bool) { b.hidden = hidden }

// Selected implements rig.Bone.
func (b *Bone) Selected() bool { return b.selected }

// SetSelected implements rig.Bone.
func (b *Bone) SetSelected(selected bool) { b.selected = selected }

// Head returns the rest head in world space.
func (b *Bone) Head() r3.Vec { return b.head }

// Tail returns the rest tail in world space.
func (b *Bone) Tail() r3.Vec { return b.tail }

// Property implements rig.Bone.
func (b *Bone) Property(name string) (float64, bool) {
	v, ok := b.props[name]
	return v, ok
}

// SetProperty implements rig.Bone.
func (b *Bone) SetProperty(name string, value float64) error {
	if name == "" {
		return ErrEmptyName
	}

	b.props[name] = value

	return nil
}

// Constraints implements rig.Bone.
func (b *Bone) Constraints() []rig.Constraint {
	return slices.Clone(b.constraints)
}

// AddConstraint implements rig.Bone. A name already used on the bone gets a
// numeric suffix, ".001" first.
func (b *Bone) AddConstraint(c rig.Constraint) (rig.Constraint, error) {
	if c.Kind != rig.KindDampedTrack && c.Kind != rig.KindCopyLocation {
		return rig.Constraint{}, fmt.Errorf("%w: %v", ErrUnsupportedConstraint, c.Kind)
	}

	if c.Name == "" {
		c.Name = c.Kind.String()
	}

	c.Name = b.uniqueConstraintName(c.Name)
	b.constraints = append(b.constraints, c)

	return c, nil
}

func (b *Bone) uniqueConstraintName(name string) string {
	taken := func(n string) bool {
		return slices.ContainsFunc(b.constraints, func(c rig.Constraint) bool { return c.Name == n })
	}

	if !taken(name) {
		return name
	}

	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.%03d", name, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// RemoveConstraints implements rig.Bone.
func (b *Bone) RemoveConstraints(match func(rig.Constraint) bool) int {
	before := len(b.constraints)
	b.constraints = slices.DeleteFunc(b.constraints, match)

	return before - len(b.constraints)
}

// Collection is a bone collection.
type Collection struct {
	name    string
	visible bool
	solo    bool
}

// Name implements rig.Collection.
func (c *Collection) Name() string { return c.name }

// Visible implements rig.Collection.
func (c *Collection) Visible() bool { return c.visible }

// SetVisible implements rig.Collection.
func (c *Collection) SetVisible(visible bool) { c.visible = visible }

// Solo implements rig.Collection.
func (c *Collection) Solo() bool { return c.solo }

// SetSolo implements rig.Collection.
func (c *Collection) SetSolo(solo bool) { c.solo = solo }
