package memhost

import (
	"errors"
	"fmt"

	"rig-retarget/internal/rig"
)

var (
	ErrEmptyName             = errors.New("empty name")
	ErrDuplicateName         = errors.New("name already used")
	ErrNoActiveObject        = errors.New("no active object")
	ErrNotArmature           = errors.New("active object is not an armature")
	ErrUnsupportedMode       = errors.New("mode not supported")
	ErrUnsupportedConstraint = errors.New("constraint kind not supported")
	ErrInvalidBake           = errors.New("invalid bake options")
)

// Scene is an in-memory host scene. It implements rig.Host.
type Scene struct {
	name    string
	objects []rig.Object
	actions map[string]*Action
	// actionOrder keeps actions in creation order for saving.
	actionOrder []string
	active      rig.Object

	// BakeErr, when set, makes Bake fail without touching any action.
	BakeErr error
	// Bakes records the options of every successful Bake call.
	Bakes []rig.BakeOptions
}

var _ rig.Host = (*Scene)(nil)

// NewScene returns an empty scene.
func NewScene(name string) *Scene {
	return &Scene{
		name:    name,
		actions: map[string]*Action{},
	}
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

type sceneObject interface {
	rig.Object
	base() *Object
	setMode(m rig.Mode) error
}

// AddObject adds a plain object in OBJECT mode.
func (s *Scene) AddObject(name string, kind Kind) (*Object, error) {
	if err := s.checkObjectName(name); err != nil {
		return nil, err
	}

	o := &Object{name: name, kind: kind, mode: rig.ModeObject}
	s.objects = append(s.objects, o)

	return o, nil
}

// AddArmature adds an empty armature in OBJECT mode.
func (s *Scene) AddArmature(name string) (*Armature, error) {
	if err := s.checkObjectName(name); err != nil {
		return nil, err
	}

	a := &Armature{
		Object: Object{name: name, kind: KindArmature, mode: rig.ModeObject},
		scene:  s,
	}
	s.objects = append(s.objects, a)

	return a, nil
}

func (s *Scene) checkObjectName(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if s.Object(name) != nil {
		return fmt.Errorf("%w: object %q", ErrDuplicateName, name)
	}

	return nil
}

// AddAction adds an empty action with the given frame range. An existing
// name gets a numeric suffix.
func (s *Scene) AddAction(name string, start, end int) *Action {
	if name == "" {
		name = "Action"
	}

	unique := name
	for i := 1; s.actions[unique] != nil; i++ {
		unique = fmt.Sprintf("%s.%03d", name, i)
	}

	a := &Action{name: unique, start: start, end: end, tracks: map[string][]Key{}}
	s.actions[unique] = a
	s.actionOrder = append(s.actionOrder, unique)

	return a
}

// Object returns the named object, or nil.
func (s *Scene) Object(name string) rig.Object {
	for _, o := range s.objects {
		if o.Name() == name {
			return o
		}
	}

	return nil
}

// Armature returns the named armature.
func (s *Scene) Armature(name string) (*Armature, bool) {
	a, ok := s.Object(name).(*Armature)
	return a, ok
}

// Action returns the named action.
func (s *Scene) Action(name string) (*Action, bool) {
	a, ok := s.actions[name]
	return a, ok
}

// Armatures returns every armature in creation order.
func (s *Scene) Armatures() []*Armature {
	var out []*Armature

	for _, o := range s.objects {
		if a, ok := o.(*Armature); ok {
			out = append(out, a)
		}
	}

	return out
}

// Skeleton returns the named armature as a rig.Skeleton.
func (s *Scene) Skeleton(name string) (rig.Skeleton, bool) {
	a, ok := s.Armature(name)
	if !ok {
		return nil, false
	}

	return a, true
}

// LookupAction returns the named action as a rig.Action.
func (s *Scene) LookupAction(name string) (rig.Action, bool) {
	a, ok := s.actions[name]
	if !ok {
		return nil, false
	}

	return a, true
}

// Actions returns every action in creation order.
func (s *Scene) Actions() []*Action {
	out := make([]*Action, 0, len(s.actionOrder))
	for _, name := range s.actionOrder {
		out = append(out, s.actions[name])
	}

	return out
}

// ActiveObject implements rig.Host.
func (s *Scene) ActiveObject() rig.Object {
	return s.active
}

// SetActiveObject implements rig.Host. Objects not in this scene clear the
// active object.
func (s *Scene) SetActiveObject(obj rig.Object) {
	if obj == nil {
		s.active = nil
		return
	}

	s.active = s.Object(obj.Name())
}

// Mode implements rig.Host. It is the active object's mode, or OBJECT when
// nothing is active.
func (s *Scene) Mode() rig.Mode {
	if s.active == nil {
		return rig.ModeObject
	}

	return s.active.Mode()
}

// SetMode implements rig.Host.
func (s *Scene) SetMode(m rig.Mode) error {
	obj, ok := s.active.(sceneObject)
	if !ok {
		return ErrNoActiveObject
	}

	return obj.setMode(m)
}
