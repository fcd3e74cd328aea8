package app

import (
	"fmt"
	"os"

	"github.com/bastiangx/wordsolve/internal/cli"
	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/server"
	"github.com/bastiangx/wordsolve/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newSolveCmd(g *globalFlags) *cobra.Command {
	var estimate bool

	cmd := &cobra.Command{
		Use:   "solve LETTERS...",
		Short: "Solve one or more letter sequences and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if estimate {
				return runEstimate(cmd, g, args)
			}
			e, err := setup(cmd, g)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, letters := range args {
				result, err := e.solver.Solve(cmd.Context(), letters)
				if err != nil {
					return err
				}
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "[ %s ]\n", result.Letters)
				}
				if err := cli.RenderResult(out, result, e.cfg.CLI.Columns, e.cfg.CLI.Color); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&estimate, "estimate", false, "print the candidate pool size without matching")
	return cmd
}

// runEstimate needs no dictionary: the pool size only depends on the letters.
func runEstimate(cmd *cobra.Command, g *globalFlags, args []string) error {
	cfg, _, err := loadConfig(cmd, g)
	if err != nil {
		return err
	}
	opts, err := cfg.SolverOptions()
	if err != nil {
		return err
	}
	s := solver.New(nil, opts...)
	for _, raw := range args {
		letters, err := s.Normalize(raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s candidates\n",
			letters, utils.FormatWithCommas(solver.EstimateCandidates(letters)))
	}
	return nil
}

func newCLICmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cli",
		Short: "Interactive prompt (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCLI(cmd, g)
		},
	}
}

func runCLI(cmd *cobra.Command, g *globalFlags) error {
	e, err := setup(cmd, g)
	if err != nil {
		return err
	}
	logger.Default(AppName).Debug("Input info:", "columns", e.cfg.CLI.Columns, "minLen", e.cfg.CLI.MinLen, "maxLen", e.cfg.CLI.MaxLen)

	h := cli.NewInputHandler(e.solver, cmd.InOrStdin(), cmd.OutOrStdout(), cli.Options{
		Columns: e.cfg.CLI.Columns,
		Color:   e.cfg.CLI.Color,
	})
	return h.Start(cmd.Context())
}

func newServeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer msgpack requests on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, g)
			if err != nil {
				return err
			}
			format, err := dictionary.DetectFileFormat(e.dictPath)
			if err != nil {
				return err
			}
			info := server.DictInfo{Path: utils.GetAbsolutePath(e.dictPath), Format: format.String(), Words: e.dict.Len()}

			showStartupInfo(info, e.solver.Workers())
			srv := server.NewServer(e.solver, info, cmd.InOrStdin(), cmd.OutOrStdout())
			return srv.Start(cmd.Context())
		},
	}
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(info server.DictInfo, workers int) {
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Info("dict", "path", info.Path, "format", info.Format, "words", utils.FormatWithCommas(info.Words))
	l.Info("status: ready", "workers", workers)
}

func newConvertCmd() *cobra.Command {
	var (
		minLen    int
		chunkSize int
	)

	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a dictionary between text, chunk and msgpack formats",
		Long: `Convert reads IN in any supported format and writes OUT in the format
named by its extension: .msgpack/.mpk, .bin, .txt/.dic/.lst, or a chunk
directory when OUT has no extension.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dictionary.Load(args[0], dictionary.LoadOptions{MinWordLen: minLen})
			if err != nil {
				return err
			}
			if err := dictionary.Save(d, args[1], chunkSize); err != nil {
				return fmt.Errorf("save dictionary %s: %w", args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s words to %s\n", utils.FormatWithCommas(d.Len()), args[1])
			return nil
		},
	}
	cmd.Flags().IntVar(&minLen, "min-len", 2, "drop words shorter than this")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 10000, "words per chunk file when writing a chunk directory")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			l := logger.NewWithConfig(cmd.OutOrStdout(), "", log.InfoLevel, false, false, log.TextFormatter)

			styles := log.DefaultStyles()
			styles.Values["version"] = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
				Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
			styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
			l.SetStyles(styles)

			l.Print("")
			l.Print("[ WordSolve ] Every word hiding in a handful of letters")
			l.Print("", "version", Version)
			l.Print("")
			l.Print("use -h or --help to see available options")
			l.Print("Github Repo", "gh", gh)
		},
	}
}
