package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rig-retarget/internal/bonemap"
	"rig-retarget/internal/config"
	"rig-retarget/internal/logging"
	"rig-retarget/internal/memhost"
	"rig-retarget/internal/session"
	"rig-retarget/internal/statebag"
)

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

// loadConfig resolves settings from the config file, the environment and
// the flags, in that order.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.LoadDefault(".")
	}

	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv(lookupEnv)

	flags := cmd.Flags()
	override := func(dst *string, name, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}

	override(&cfg.Scene, "scene", opts.scene)
	override(&cfg.SceneName, "scene-name", opts.sceneName)
	override(&cfg.StateDB, "state-db", opts.stateDB)
	override(&cfg.LogFile, "log-file", opts.logFile)
	override(&cfg.BoneMap, "bone-map", opts.boneMap)

	return cfg, nil
}

func newLogger(cmd *cobra.Command, opts *options, cfg *config.Config) (*logging.Logger, error) {
	_, debugEnv := lookupEnv("DEBUG")

	return logging.New(logging.Options{
		Console: cmd.ErrOrStderr(),
		Debug:   opts.debug || debugEnv,
		File:    cfg.LogFile,
	})
}

func loadTable(cfg *config.Config) (*bonemap.Table, error) {
	if cfg.BoneMap == "" {
		return bonemap.Default(), nil
	}

	return bonemap.LoadFile(cfg.BoneMap)
}

// env is everything a session command works with.
type env struct {
	cfg       *config.Config
	log       *logging.Logger
	scene     *memhost.Scene
	store     statebag.Store
	table     *bonemap.Table
	session   *session.Controller
	sceneName string
}

// openEnv loads the scene and its stored session.
func openEnv(cmd *cobra.Command, opts *options) (_ *env, err error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cmd, opts, cfg)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: log}

	defer func() {
		if err != nil {
			e.close()
		}
	}()

	e.table, err = loadTable(cfg)
	if err != nil {
		return nil, err
	}

	e.scene, err = memhost.LoadFile(cfg.Scene)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w (run \"rig-retarget scene init\" to create one)", err)
	}

	if err != nil {
		return nil, err
	}

	e.sceneName = cfg.SceneName
	if e.sceneName == "" {
		e.sceneName = e.scene.Name()
	}

	e.store, err = statebag.OpenSQLite(cfg.StateDB)
	if err != nil {
		return nil, err
	}

	rec, err := statebag.LoadOrNew(e.store, e.sceneName)
	if err != nil {
		return nil, err
	}

	e.session = session.New(e.scene, e.table, e.log.Logger)
	e.session.Restore(rec, e.scene)

	e.log.Debug("session loaded", "scene", e.sceneName, "file", cfg.Scene, "db", cfg.StateDB)

	return e, nil
}

// save writes the scene file and the session record.
func (e *env) save() error {
	if err := memhost.WriteFile(e.scene, e.cfg.Scene); err != nil {
		return err
	}

	return e.store.Save(e.session.Snapshot(e.sceneName))
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Debug("closing state database failed", "error", err)
		}
	}

	e.log.Close()
}

// withSession opens the environment, runs fn and saves on success.
func withSession(cmd *cobra.Command, opts *options, fn func(e *env) error) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.close()

	if err := fn(e); err != nil {
		return err
	}

	return e.save()
}
