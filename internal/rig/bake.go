package rig

// Channel is a set of data paths a bake writes.
type Channel string

const (
	ChannelPose   Channel = "POSE"
	ChannelObject Channel = "OBJECT"
)

// BakeOptions mirrors the host's bake facility parameters.
type BakeOptions struct {
	FrameStart int
	FrameEnd   int
	Step       int
	// OnlySelected restricts the bake to selected bones.
	OnlySelected bool
	// VisualKeying keys the evaluated pose, constraints included.
	VisualKeying bool
	// UseCurrentAction writes into the bound action instead of a new one.
	UseCurrentAction bool
	Channels         []Channel
}
