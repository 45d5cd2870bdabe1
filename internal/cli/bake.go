package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errBakeDisabled = errors.New("retargeting is off, run \"rig-retarget enable\" first")

func newBakeCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "bake",
		Short: "Bake the retargeted motion to keyframes on the target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(e *env) error {
				if !e.session.Enabled() {
					return errBakeDisabled
				}

				if act := e.session.OverwriteTarget(); act != nil && !yes {
					ok, err := confirm(fmt.Sprintf("Overwrite action %q on %s?", act.Name(), e.session.Target().Name()))
					if err != nil {
						return err
					}

					if !ok {
						fmt.Fprintln(cmd.OutOrStdout(), "Bake canceled")
						return nil
					}
				}

				res, err := e.session.Bake()
				if err != nil {
					return err
				}

				verb := "Baked"
				if res.Overwrite {
					verb = "Overwrote"
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d bones, frames %d-%d\n",
					verb, res.Action.Name(), len(res.Bones), res.FrameStart, res.FrameEnd)

				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "overwrite the target action without asking")

	return cmd
}
