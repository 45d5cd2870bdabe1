package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rig-retarget/internal/rig"
)

func newSelectCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Choose the source or target armature",
	}

	cmd.AddCommand(
		newSelectRoleCmd(opts, "source", "Mixamo armature to read animation from"),
		newSelectRoleCmd(opts, "target", "Rigify armature to drive"),
	)

	return cmd
}

func newSelectRoleCmd(opts *options, role, short string) *cobra.Command {
	var action string

	cmd := &cobra.Command{
		Use:   role + " <armature>",
		Short: "Select the " + short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, opts, func(e *env) error {
				skel, ok := e.scene.Skeleton(args[0])
				if !ok {
					return fmt.Errorf("no armature named %q in scene %s", args[0], e.scene.Name())
				}

				var act rig.Action
				if action != "" {
					if act, ok = e.scene.LookupAction(action); !ok {
						return fmt.Errorf("no action named %q in scene %s", action, e.scene.Name())
					}
				}

				if err := selectRole(e, role, skel, act); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s armature: %s\n", role, skel.Name())

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&action, "action", "", "action to use with the armature")

	return cmd
}

func selectRole(e *env, role string, skel rig.Skeleton, act rig.Action) error {
	if role == "source" {
		if act != nil {
			e.session.SetSourceAction(act)
		}

		return e.session.SetSource(skel)
	}

	if err := e.session.SetTarget(skel); err != nil {
		return err
	}

	if act != nil {
		e.session.SetTargetAction(act)
	}

	return nil
}
