package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnableCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Create the retarget constraints and switch the target to FK",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(e *env) error {
				if err := e.session.Enable(); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Retargeting %s onto %s\n",
					e.session.Source().Name(), e.session.Target().Name())

				return nil
			})
		},
	}
}

func newDisableCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Remove the retarget constraints and restore the IK/FK mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(e *env) error {
				if err := e.session.Disable(); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Retargeting off, IK/FK mode %s\n", e.session.Mode().Label())

				return nil
			})
		},
	}
}
