package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/c2fo/azfs/azfile"
	_ "github.com/c2fo/azfs/backend/all"
	"github.com/c2fo/azfs/options"
)

// Build information - set via ldflags
var (
	Version = "dev"
	Commit  = "none"
)

// app carries the streams and the client factory the commands share.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	cfg        *Config
	logger     *slog.Logger

	// extra is appended to the options built from the config, ie: backend overrides in tests.
	extra []options.NewClientOption[azfile.Client]
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

// run executes args and returns the process exit code.
func run(ctx context.Context, a *app, args []string) int {
	root := a.rootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

func (a *app) printError(err error) {
	red := color.New(color.FgRed, color.Bold)
	if a.cfg != nil && a.cfg.NoColor {
		red.DisableColor()
	}
	_, _ = red.Fprint(a.stderr, "Error: ")
	_, _ = fmt.Fprintln(a.stderr, err)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "azfs",
		Short: "Read, write and list Azure Blob, Data Lake and Queue storage by URL",
		Long: `azfs addresses Azure storage with URLs such as
  https://acct.blob.core.windows.net/container/path/file.csv
  abfss://filesystem@acct.dfs.core.windows.net/dir/
  https://acct.queue.core.windows.net/queue

Credentials come from ~/.azfs.yaml, AZFS_* environment variables or the ambient Azure identity.`,
		Version:       fmt.Sprintf("%s (commit: %s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default "+defaultConfigPath+")")
	pf.String("log-level", "warn", "log level: debug, info, warn or error")
	pf.Bool("no-color", false, "disable colored output")
	pf.Bool("progress", false, "show transfer progress on stderr")

	root.AddCommand(
		a.lsCommand(),
		a.globCommand(),
		a.getCommand(),
		a.putCommand(),
		a.cpCommand(),
		a.rmCommand(),
		a.infoCommand(),
		a.existsCommand(),
		a.readCommand(),
	)
	return root
}

// configure loads the config and installs the logger.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.NoColor {
		color.NoColor = true
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	return nil
}

func (a *app) client() (*azfile.Client, error) {
	opts, err := a.cfg.ClientOptions(a.logger)
	if err != nil {
		return nil, err
	}
	return azfile.NewClient(append(opts, a.extra...)...)
}
