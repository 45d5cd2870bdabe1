package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/common"
	"rig-retarget/internal/diagnostic"
	"rig-retarget/internal/session"
)

func newBoneMapCmd(opts *options) *cobra.Command {
	var (
		validate bool
		suggest  bool
		out      string
	)

	cmd := &cobra.Command{
		Use:   "bonemap",
		Short: "Print, export or validate the bone map",
		Long: `Print the bone map, or write it as YAML with --out.

--validate checks the map against the selected armatures. --suggest looks for
renamed controls on the selected target; combined with --out it writes the map
with every confident suggestion applied.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if validate {
				return validateBoneMap(cmd, opts)
			}

			if suggest {
				return suggestBoneMap(cmd, opts, out)
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			table, err := loadTable(cfg)
			if err != nil {
				return err
			}

			if out != "" {
				if err := bonemap.WriteFile(table, out); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bone pairs to %s\n", len(table.Entries()), out)

				return nil
			}

			w := cmd.OutOrStdout()
			for _, e := range table.Entries() {
				fmt.Fprintf(w, "%-24s -> %s\n", e.Source, e.Target)
			}

			fmt.Fprintf(w, "%-24s -> %s (Y only, torso takes X and Z)\n", table.SourceRoot(), table.TargetRoot())

			return nil
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "check the map against the selected armatures")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "propose replacements for target bones missing on the selected target")
	cmd.MarkFlagsMutuallyExclusive("validate", "suggest")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the map as YAML to this file")

	return cmd
}

func validateBoneMap(cmd *cobra.Command, opts *options) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.close()

	res := bonemap.Validate(e.table, e.session.Source(), e.session.Target())
	printDiagnostics(cmd, res)

	if err := res.Error(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d warnings\n", len(res.Warnings))

	return nil
}

func suggestBoneMap(cmd *cobra.Command, opts *options, out string) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.close()

	target := e.session.Target()
	if target == nil {
		return fmt.Errorf("%w: target skeleton missing", session.ErrNotConfigured)
	}

	suggestions := bonemap.Suggest(e.table, target)
	w := cmd.OutOrStdout()

	applied := 0

	for _, s := range suggestions {
		if s.Replacement != "" {
			applied++

			fmt.Fprintf(w, "%-24s -> %s\n", s.Entry.Target, s.Replacement)

			continue
		}

		if best, ok := common.First(s.Candidates); ok {
			fmt.Fprintf(w, "%-24s no confident match (closest %s, %.2f)\n", s.Entry.Target, best.Bone, best.Score)
		} else {
			fmt.Fprintf(w, "%-24s no candidates\n", s.Entry.Target)
		}
	}

	fmt.Fprintf(w, "%d of %d missing bones matched\n", applied, len(suggestions))

	if out == "" {
		return nil
	}

	table, err := bonemap.Apply(e.table, suggestions)
	if err != nil {
		return err
	}

	if err := bonemap.WriteFile(table, out); err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote %d bone pairs to %s\n", len(table.Entries()), out)

	return nil
}

func printDiagnostics(cmd *cobra.Command, res *diagnostic.Diagnostics) {
	for _, d := range res.All() {
		fmt.Fprintln(cmd.OutOrStdout(), d.String())
	}
}
