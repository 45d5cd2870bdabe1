package posectx

import "rig-retarget/internal/rig"

type collectionState struct {
	name    string
	visible bool
	solo    bool
}

type boneState struct {
	name     string
	hidden   bool
	selected bool
}

// VisibilitySnapshot records collection and bone flags changed by
// EnsureBonesVisible.
type VisibilitySnapshot struct {
	collections []collectionState
	bones       []boneState
}

// Len returns the number of collections and bones captured.
func (v *VisibilitySnapshot) Len() (collections, bones int) {
	return len(v.collections), len(v.bones)
}

// EnsureBonesVisible shows every collection with solo off, and shows and
// deselects every bone. The returned snapshot undoes exactly this change.
func EnsureBonesVisible(skel rig.Skeleton) *VisibilitySnapshot {
	snap := &VisibilitySnapshot{}

	for _, c := range skel.Collections() {
		snap.collections = append(snap.collections, collectionState{
			name:    c.Name(),
			visible: c.Visible(),
			solo:    c.Solo(),
		})
		c.SetVisible(true)
		c.SetSolo(false)
	}

	for _, b := range skel.Bones() {
		snap.bones = append(snap.bones, boneState{
			name:     b.Name(),
			hidden:   b.Hidden(),
			selected: b.Selected(),
		})
		b.SetHidden(false)
		b.SetSelected(false)
	}

	return snap
}

// RestoreBones writes the recorded flags back. Bones and collections that
// no longer exist are skipped; ones created after the snapshot are left
// untouched.
func RestoreBones(skel rig.Skeleton, snap *VisibilitySnapshot) {
	if snap == nil {
		return
	}

	for _, st := range snap.bones {
		b, ok := skel.Bone(st.name)
		if !ok {
			continue
		}

		b.SetHidden(st.hidden)
		b.SetSelected(st.selected)
	}

	byName := make(map[string]rig.Collection)
	for _, c := range skel.Collections() {
		byName[c.Name()] = c
	}

	for _, st := range snap.collections {
		c, ok := byName[st.name]
		if !ok {
			continue
		}

		c.SetVisible(st.visible)
		c.SetSolo(st.solo)
	}
}
