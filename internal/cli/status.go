package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"rig-retarget/internal/session"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(15)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the retarget session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd, opts)
			if err != nil {
				return err
			}
			defer e.close()

			fmt.Fprintln(cmd.OutOrStdout(), renderStatus(e.sceneName, e.session))

			return nil
		},
	}
}

func renderStatus(scene string, c *session.Controller) string {
	name := func(v interface{ Name() string }, ok bool) string {
		if !ok {
			return offStyle.Render("none")
		}

		return v.Name()
	}

	enabled := offStyle.Render("off")
	if c.Enabled() {
		enabled = onStyle.Render("on")
	}

	rows := [][2]string{
		{"Source", name(c.Source(), c.Source() != nil)},
		{"Source action", name(c.SourceAction(), c.SourceAction() != nil)},
		{"Target", name(c.Target(), c.Target() != nil)},
		{"Target action", name(c.TargetAction(), c.TargetAction() != nil)},
		{"Retargeting", enabled},
		{"IK/FK", c.Mode().Label()},
	}

	lines := []string{titleStyle.Render("Mixamo to Rigify: " + scene)}
	for _, r := range rows {
		lines = append(lines, labelStyle.Render(r[0])+r[1])
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}
