// Package cli implements the rig-retarget command line tool.
//
// Every command works on a scene file and the session stored for it in the
// state database: it loads both, runs one session operation and writes both
// back.
package cli

import (
	"github.com/spf13/cobra"
)

// options holds the global flags.
type options struct {
	configPath string
	scene      string
	sceneName  string
	stateDB    string
	logFile    string
	boneMap    string
	debug      bool
}

// NewRootCmd creates the root cobra command.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "rig-retarget",
		Short: "Retarget Mixamo animation onto Rigify rigs",
		Long: `rig-retarget drives a Rigify rig from a Mixamo skeleton with live
tracking constraints, then bakes the result to keyframes.

A typical session:

  rig-retarget scene init
  rig-retarget select source Mixamo
  rig-retarget select target Rigify
  rig-retarget enable
  rig-retarget bake
  rig-retarget disable`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./rig-retarget.yaml when present)")
	flags.StringVar(&opts.scene, "scene", "", "scene file")
	flags.StringVar(&opts.sceneName, "scene-name", "", "session key in the state database (default: the scene's name)")
	flags.StringVar(&opts.stateDB, "state-db", "", "SQLite file holding sessions")
	flags.StringVar(&opts.logFile, "log-file", "", "write debug logs to this file")
	flags.StringVar(&opts.boneMap, "bone-map", "", "bone map YAML replacing the built-in table")
	flags.BoolVar(&opts.debug, "debug", false, "show debug output")

	rootCmd.AddCommand(
		newSceneCmd(opts),
		newSelectCmd(opts),
		newEnableCmd(opts),
		newDisableCmd(opts),
		newModeCmd(opts),
		newBakeCmd(opts),
		newStatusCmd(opts),
		newBoneMapCmd(opts),
	)

	return rootCmd
}
