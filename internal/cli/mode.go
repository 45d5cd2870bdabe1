package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rig-retarget/internal/ikfk"
)

func newModeCmd(opts *options) *cobra.Command {
	names := make([]string, len(ikfk.Modes))
	for i, m := range ikfk.Modes {
		names[i] = string(m)
	}

	return &cobra.Command{
		Use:   "mode <" + strings.Join(names, "|") + ">",
		Short: "Switch the target rig's limbs between IK, FK and their own blend",
		Long: `Switch the target rig's limbs between IK, FK and their own blend.

The target must be the active object in POSE mode (see "scene mode").`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := ikfk.ParseMode(args[0])
			if err != nil {
				return err
			}

			return withSession(cmd, opts, func(e *env) error {
				if err := e.session.SetMode(m); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "IK/FK mode %s\n", m.Label())

				return nil
			})
		},
	}
}
