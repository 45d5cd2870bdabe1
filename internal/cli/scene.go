package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rig-retarget/internal/memhost"
	"rig-retarget/internal/rig"
	"rig-retarget/internal/statebag"
)

func newSceneCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Manage the scene file",
	}

	cmd.AddCommand(newSceneInitCmd(opts), newSceneShowCmd(opts), newSceneModeCmd(opts))

	return cmd
}

func newSceneInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a demo scene with a Mixamo walk and a Rigify rig",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.Scene); err == nil && !force {
				return fmt.Errorf("scene %s already exists (use --force to replace it)", cfg.Scene)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			scene := memhost.DemoScene()
			if err := memhost.WriteFile(scene, cfg.Scene); err != nil {
				return err
			}

			store, err := statebag.OpenSQLite(cfg.StateDB)
			if err != nil {
				return err
			}
			defer store.Close()

			name := cfg.SceneName
			if name == "" {
				name = scene.Name()
			}

			// A stored session would point at rigs of the replaced scene.
			if err := store.Delete(name); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with source %q, target %q and action %q\n",
				cfg.Scene, memhost.DemoSource, memhost.DemoTarget, memhost.DemoSourceAction)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "replace an existing scene file")

	return cmd
}

func newSceneShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List the scene's armatures and actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Scene %s\n", e.scene.Name())

			for _, a := range e.scene.Armatures() {
				bound := "-"
				if act := a.Action(); act != nil {
					bound = act.Name()
				}

				fmt.Fprintf(out, "  armature %-12s bones=%-3d action=%s\n", a.Name(), len(a.Bones()), bound)
			}

			for _, act := range e.scene.Actions() {
				start, end := act.FrameRange()
				fmt.Fprintf(out, "  action   %-12s frames=%d-%d\n", act.Name(), start, end)
			}

			return nil
		},
	}
}

func newSceneModeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "mode <OBJECT|POSE|EDIT> [object]",
		Short: "Switch the active object's interaction mode",
		Long: `Switch the active object's interaction mode, making object the active
object first when given. IK/FK mode changes need the target rig active in POSE.`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{string(rig.ModeObject), string(rig.ModePose), string(rig.ModeEdit)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := rig.Mode(strings.ToUpper(args[0]))

			return withSession(cmd, opts, func(e *env) error {
				if len(args) == 2 {
					obj := e.scene.Object(args[1])
					if obj == nil {
						return fmt.Errorf("no object named %q in scene %s", args[1], e.scene.Name())
					}

					e.scene.SetActiveObject(obj)
				}

				if err := e.scene.SetMode(mode); err != nil {
					return fmt.Errorf("switch to %s: %w", mode, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s in %s mode\n", e.scene.ActiveObject().Name(), mode)

				return nil
			})
		},
	}
}
