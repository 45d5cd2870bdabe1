package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/ikfk"
	"rig-retarget/internal/memhost"
	"rig-retarget/internal/rig"
	"rig-retarget/internal/session"
	"rig-retarget/internal/statebag"
)

type harness struct {
	dir   string
	scene string
	db    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	origEnv, origTTY, origAsk := lookupEnv, isTTY, ask
	lookupEnv = func(string) (string, bool) { return "", false }
	isTTY = func() bool { return false }
	ask = func(string) (bool, error) { return false, nil }

	t.Cleanup(func() { lookupEnv, isTTY, ask = origEnv, origTTY, origAsk })

	h := &harness{
		dir:   dir,
		scene: filepath.Join(dir, "scene.yaml"),
		db:    filepath.Join(dir, "state.db"),
	}

	h.run(t, "scene", "init")

	return h
}

func (h *harness) exec(args ...string) (string, error) {
	cmd := NewRootCmd("test")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--scene", h.scene, "--state-db", h.db}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func (h *harness) run(t *testing.T, args ...string) string {
	t.Helper()

	out, err := h.exec(args...)
	require.NoError(t, err, out)

	return out
}

func (h *harness) record(t *testing.T) statebag.Record {
	t.Helper()

	store, err := statebag.OpenSQLite(h.db)
	require.NoError(t, err)
	defer store.Close()

	rec, err := store.Load("Scene")
	require.NoError(t, err)

	return rec
}

func (h *harness) loadScene(t *testing.T) *memhost.Scene {
	t.Helper()

	s, err := memhost.LoadFile(h.scene)
	require.NoError(t, err)

	return s
}

func countTagged(t *testing.T, s *memhost.Scene) int {
	t.Helper()

	tgt, ok := s.Armature(memhost.DemoTarget)
	require.True(t, ok)

	n := 0

	for _, b := range tgt.Bones() {
		for _, c := range b.Constraints() {
			if strings.HasPrefix(c.Name, bonemap.DefaultTag) {
				n++
			}
		}
	}

	return n
}

func TestSceneInit(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec("scene", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	h.run(t, "scene", "init", "--force")

	out := h.run(t, "scene", "show")
	assert.Contains(t, out, "armature Mixamo")
	assert.Contains(t, out, "action=Walk")
	assert.Contains(t, out, "frames=1-24")
}

func TestWorkflow(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec("enable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not configured")

	h.run(t, "select", "source", memhost.DemoSource)
	h.run(t, "select", "target", memhost.DemoTarget)

	rec := h.record(t)
	assert.Equal(t, memhost.DemoSource, rec.Source)
	assert.Equal(t, memhost.DemoSourceAction, rec.SourceAction)
	assert.Equal(t, memhost.DemoTarget, rec.Target)

	_, err = h.exec("bake")
	require.ErrorIs(t, err, errBakeDisabled)

	out := h.run(t, "enable")
	assert.Contains(t, out, "Retargeting Mixamo onto Rigify")
	assert.Equal(t, 23, countTagged(t, h.loadScene(t)))

	rec = h.record(t)
	assert.True(t, rec.Enabled)
	assert.Equal(t, ikfk.FK, rec.Mode)
	assert.Equal(t, ikfk.Mixed, rec.IKFK.BeforeRetarget)

	_, err = h.exec("mode", "IK")
	require.Error(t, err)

	out = h.run(t, "bake")
	assert.Contains(t, out, "Baked Action: 23 bones, frames 1-24")
	assert.Equal(t, "Action", h.record(t).TargetAction)

	out = h.run(t, "bake")
	assert.Contains(t, out, "Overwrote Action")

	out = h.run(t, "status")
	assert.Contains(t, out, "Mixamo to Rigify: Scene")
	assert.Contains(t, out, "Walk")
	assert.Contains(t, out, "FK")

	out = h.run(t, "disable")
	assert.Contains(t, out, "IK/FK mode Rigify")

	s := h.loadScene(t)
	assert.Zero(t, countTagged(t, s))

	tgt, _ := s.Armature(memhost.DemoTarget)
	v, _ := tgt.PoseBone("thigh_parent.R").Property(bonemap.DefaultToggleProperty)
	assert.InDelta(t, 0.75, v, 1e-9)

	act, ok := s.Action("Action")
	require.True(t, ok)
	assert.Len(t, act.KeyedFrames("torso"), 24)
}

func TestBakeConfirmation(t *testing.T) {
	h := newHarness(t)

	h.run(t, "select", "source", memhost.DemoSource)
	h.run(t, "select", "target", memhost.DemoTarget)
	h.run(t, "enable")
	h.run(t, "bake")

	isTTY = func() bool { return true }

	var asked string
	ask = func(msg string) (bool, error) {
		asked = msg
		return false, nil
	}

	out := h.run(t, "bake")
	assert.Contains(t, out, "Bake canceled")
	assert.Equal(t, `Overwrite action "Action" on Rigify?`, asked)
	assert.Len(t, h.loadScene(t).Actions(), 2)

	asked = ""
	out = h.run(t, "bake", "--yes")
	assert.Contains(t, out, "Overwrote Action")
	assert.Empty(t, asked)
}

func TestModeCommand(t *testing.T) {
	h := newHarness(t)

	h.run(t, "select", "target", memhost.DemoTarget)

	_, err := h.exec("mode", "ik")
	require.ErrorIs(t, err, session.ErrModeUnavailable)

	s := h.loadScene(t)
	tgt, _ := s.Armature(memhost.DemoTarget)
	v, _ := tgt.PoseBone("upper_arm_parent.R").Property(bonemap.DefaultToggleProperty)
	assert.InDelta(t, 1.0, v, 1e-9)
	assert.Equal(t, ikfk.Mixed, h.record(t).Mode)

	_, err = h.exec("scene", "mode", "pose", "Nowhere")
	require.Error(t, err)

	out := h.run(t, "scene", "mode", "pose", memhost.DemoTarget)
	assert.Contains(t, out, "Rigify in POSE mode")
	assert.Equal(t, rig.ModePose, h.loadScene(t).Mode())

	out = h.run(t, "mode", "ik")
	assert.Contains(t, out, "IK/FK mode IK")

	s = h.loadScene(t)
	tgt, _ = s.Armature(memhost.DemoTarget)
	v, _ = tgt.PoseBone("upper_arm_parent.R").Property(bonemap.DefaultToggleProperty)
	assert.InDelta(t, 0.0, v, 1e-9)

	h.run(t, "mode", "RIG")

	s = h.loadScene(t)
	tgt, _ = s.Armature(memhost.DemoTarget)
	v, _ = tgt.PoseBone("upper_arm_parent.R").Property(bonemap.DefaultToggleProperty)
	assert.InDelta(t, 1.0, v, 1e-9)

	_, err = h.exec("mode", "sideways")
	require.ErrorIs(t, err, ikfk.ErrUnknownMode)
}

func TestSelectUnknown(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec("select", "source", "Nobody")
	require.Error(t, err)

	_, err = h.exec("select", "source", memhost.DemoSource, "--action", "Nothing")
	require.Error(t, err)
}

func TestBoneMapCommand(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "bonemap")
	assert.Contains(t, out, "mixamorig:LeftForeArm")
	assert.Contains(t, out, "forearm_fk.L")

	path := filepath.Join(h.dir, "bones.yaml")
	out = h.run(t, "bonemap", "--out", path)
	assert.Contains(t, out, "Wrote 22 bone pairs")

	table, err := bonemap.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, bonemap.Default().Entries(), table.Entries())

	_, err = h.exec("bonemap", "--validate")
	require.Error(t, err)

	h.run(t, "select", "source", memhost.DemoSource)
	h.run(t, "select", "target", memhost.DemoTarget)

	out = h.run(t, "bonemap", "--validate")
	assert.Contains(t, out, "0 warnings")

	require.NoError(t, os.WriteFile(path, []byte("bones:\n  mixamorig:Head: head\n  mixamorig:Tail: tail\n"), 0o644))

	out = h.run(t, "--bone-map", path, "bonemap", "--validate")
	assert.Contains(t, out, bonemap.CodeSourceBoneAbsent)
	assert.Contains(t, out, "2 warnings")
}

func TestConfigFile(t *testing.T) {
	h := newHarness(t)

	other := filepath.Join(h.dir, "other.yaml")
	cfgPath := filepath.Join(h.dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("scene: "+other+"\nstate_db: "+h.db+"\n"), 0o644))

	cmd := NewRootCmd("test")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", cfgPath, "scene", "init"})
	require.NoError(t, cmd.Execute(), out.String())

	assert.FileExists(t, other)
}

func TestBoneMapSuggest(t *testing.T) {
	h := newHarness(t)

	_, err := h.exec("bonemap", "--suggest")
	require.Error(t, err)

	s := h.loadScene(t)
	custom, err := s.AddArmature("Custom")
	require.NoError(t, err)

	for _, e := range bonemap.Default().Entries() {
		name := e.Target
		if name == "hand_fk.L" {
			name = "Hand_FK_L"
		}

		custom.AddBone(name, r3.Vec{}, r3.Vec{Z: 1})
	}

	require.NoError(t, memhost.WriteFile(s, h.scene))

	h.run(t, "select", "target", "Custom")

	out := h.run(t, "bonemap", "--suggest")
	assert.Contains(t, out, "Hand_FK_L")
	assert.Contains(t, out, "1 of 1 missing bones matched")

	path := filepath.Join(h.dir, "custom.yaml")
	h.run(t, "bonemap", "--suggest", "--out", path)

	table, err := bonemap.LoadFile(path)
	require.NoError(t, err)

	target, ok := table.TargetFor("mixamorig:LeftHand")
	require.True(t, ok)
	assert.Equal(t, "Hand_FK_L", target)
}
