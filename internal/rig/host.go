package rig

// Mode is an interaction mode of a scene object.
type Mode string

const (
	ModeObject Mode = "OBJECT"
	ModePose   Mode = "POSE"
	ModeEdit   Mode = "EDIT"
	ModeSculpt Mode = "SCULPT"
)

// Object is any object that can be made active in the host scene.
type Object interface {
	Name() string
	Mode() Mode
}

// Skeleton is an armature object exposing its pose bones.
type Skeleton interface {
	Object
	// Bone returns the pose bone with the given name.
	Bone(name string) (Bone, bool)
	// Bones returns every pose bone in a stable order.
	Bones() []Bone
	// Collections returns every bone collection of the armature data.
	Collections() []Collection
	// Action returns the currently bound action, or nil.
	Action() Action
	// SetAction binds an action; nil unbinds.
	SetAction(a Action)
}

// Bone is a pose-time bone.
type Bone interface {
	Name() string
	Hidden() bool
	SetHidden(hidden bool)
	Selected() bool
	SetSelected(selected bool)
	// Property reads a custom float property.
	Property(name string) (float64, bool)
	SetProperty(name string, value float64) error
	Constraints() []Constraint
	// AddConstraint attaches c and returns it as stored. The host may rename
	// it when the name is already taken on this bone.
	AddConstraint(c Constraint) (Constraint, error)
	// RemoveConstraints deletes every constraint for which match returns
	// true and reports how many were removed.
	RemoveConstraints(match func(Constraint) bool) int
}

// Collection is a named group of bones with visibility flags.
type Collection interface {
	Name() string
	Visible() bool
	SetVisible(visible bool)
	Solo() bool
	SetSolo(solo bool)
}

// Action is an animation clip.
type Action interface {
	Name() string
	// FrameRange returns the inclusive first and last frame.
	FrameRange() (start, end int)
}

// Host is the running application the engine drives.
type Host interface {
	// ActiveObject returns the active object, or nil when nothing is active.
	ActiveObject() Object
	SetActiveObject(obj Object)
	// Mode returns the current interaction mode of the context.
	Mode() Mode
	// SetMode switches the active object to m. It fails when the active
	// object does not support m.
	SetMode(m Mode) error
	// Bake keys the active skeleton and returns the action holding the keys.
	Bake(opts BakeOptions) (Action, error)
}
