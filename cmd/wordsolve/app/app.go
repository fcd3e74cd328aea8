// Package app wires the wordsolve commands together.
package app

import (
	"fmt"

	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/config"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordsolve"
	gh      = "https://github.com/bastiangx/wordsolve"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	debug      bool
	dictPath   string
	workers    int
	mode       string
}

// env is everything a command needs once config and dictionary are loaded.
type env struct {
	cfg      *config.Config
	dictPath string
	dict     *dictionary.Dictionary
	solver   *solver.Solver
}

// New builds the root command. Without a subcommand it runs the
// interactive prompt.
func New() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Find every word spelled by a subset of a few letters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(g.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCLI(cmd, g)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "path to a TOML config file")
	flags.BoolVarP(&g.debug, "debug", "d", false, "toggle debug logging")
	flags.StringVar(&g.dictPath, "dict", "", "dictionary file or chunk directory (overrides dict.path)")
	flags.IntVar(&g.workers, "workers", 0, "matcher goroutines, 0 for one per CPU (overrides solver.workers)")
	flags.StringVar(&g.mode, "mode", "", "matching mode: auto, pool or stream (overrides solver.mode)")

	rootCmd.AddCommand(
		newSolveCmd(g),
		newCLICmd(g),
		newServeCmd(g),
		newConvertCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig reads the config file and applies any flags the user set.
func loadConfig(cmd *cobra.Command, g *globalFlags) (*config.Config, *utils.PathResolver, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}

	defaultPath := resolver.GetConfigPath(config.FileName)
	cfg, used, err := config.LoadConfigWithPriority(g.configPath, defaultPath)
	if err != nil {
		return nil, nil, err
	}
	log.Debugf("Using config: %q", used)

	if cmd.Flags().Changed("dict") {
		cfg.Dict.Path = g.dictPath
	}
	if cmd.Flags().Changed("workers") {
		cfg.Solver.Workers = g.workers
	}
	if cmd.Flags().Changed("mode") {
		cfg.Solver.Mode = g.mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, resolver, nil
}

// setup loads config, dictionary and solver.
func setup(cmd *cobra.Command, g *globalFlags) (*env, error) {
	cfg, resolver, err := loadConfig(cmd, g)
	if err != nil {
		return nil, err
	}

	dictPath := resolver.ResolveDictPath(cfg.Dict.Path)
	dict, err := dictionary.Load(dictPath, dictionary.LoadOptions{MinWordLen: cfg.Dict.MinWordLen})
	if err != nil {
		return nil, err
	}

	opts, err := cfg.SolverOptions()
	if err != nil {
		return nil, err
	}
	s := solver.New(dict, opts...)
	log.Debug("Solver ready", "dict", dictPath, "words", dict.Len(), "workers", s.Workers(), "mode", cfg.Solver.Mode)

	return &env{cfg: cfg, dictPath: dictPath, dict: dict, solver: s}, nil
}
