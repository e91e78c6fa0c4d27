package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/rpyfmt/internal/config"
	"github.com/jorge-barreto/rpyfmt/internal/dispatch"
	"github.com/jorge-barreto/rpyfmt/internal/docs"
	"github.com/jorge-barreto/rpyfmt/internal/doctor"
	"github.com/jorge-barreto/rpyfmt/internal/document"
	"github.com/jorge-barreto/rpyfmt/internal/engine"
	"github.com/jorge-barreto/rpyfmt/internal/pipeline"
	"github.com/jorge-barreto/rpyfmt/internal/report"
	"github.com/jorge-barreto/rpyfmt/internal/scaffold"
	"github.com/jorge-barreto/rpyfmt/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "rpyfmt",
		Usage:       "Format the python embedded in Ren'Py scripts",
		Description: "Run 'rpyfmt docs' for documentation on regions, configuration, and diagnostics.",
		Commands: []*cli.Command{
			fmtCmd(),
			initCmd(),
			doctorCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ux.Errorf("%v", err)
		os.Exit(1)
	}
}

func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format scripts (stdout by default; -w rewrites in place)",
		ArgsUsage: "<path>... | -",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "Rewrite changed files in place"},
			&cli.BoolFlag{Name: "check", Usage: "Report whether files would change, without writing"},
			&cli.BoolFlag{Name: "stdout", Usage: "Print formatted output to stdout (the default)"},
			&cli.BoolFlag{Name: "strict", Usage: "Exit non-zero when any region fails to format"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "Output format (text|json)"},
			&cli.IntFlag{Name: "line-length", Usage: "Override the configured line length"},
			&cli.IntFlag{Name: "jobs", Usage: "Override the configured worker bound"},
			&cli.StringFlag{Name: "engine", Usage: "Override the configured engine binary"},
			&cli.StringFlag{Name: "config", Usage: "Path to .rpyfmt.yaml"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				return fmt.Errorf("at least one path is required (or '-' for stdin)")
			}

			write := cmd.Bool("write")
			check := cmd.Bool("check")
			if write && check {
				return fmt.Errorf("--write and --check are mutually exclusive")
			}
			if cmd.Bool("stdout") && (write || check) {
				return fmt.Errorf("--stdout cannot be combined with --write or --check")
			}
			outputFormat := cmd.String("format")
			if outputFormat != "text" && outputFormat != "json" {
				return fmt.Errorf("unsupported output format %q", outputFormat)
			}
			if outputFormat == "json" && !write && !check {
				return fmt.Errorf("--format json requires --write or --check")
			}

			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			if n := cmd.Int("line-length"); n > 0 {
				cfg.LineLength = int(n)
			}
			if n := cmd.Int("jobs"); n > 0 {
				cfg.Jobs = int(n)
			}
			if e := cmd.String("engine"); e != "" {
				cfg.Engine = e
			}
			strict := cfg.Strict || cmd.Bool("strict")

			opts := pipeline.Options{
				Config: cfg,
				Engine: &engine.Black{Command: cfg.Engine},
				Pool:   dispatch.NewPool(cfg.Jobs),
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			if len(args) == 1 && args[0] == "-" {
				if write || check {
					return fmt.Errorf("stdin formatting cannot use --write or --check")
				}
				return formatStdin(ctx, opts, strict)
			}

			paths, err := pipeline.ExpandPaths(args, cfg.Exclude)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no .rpy files found")
			}

			results := pipeline.FormatPaths(ctx, paths, opts, pipeline.Mode{Write: write, Check: check})

			rep := report.New()
			for _, res := range results {
				rep.Add(res)
			}

			if outputFormat == "json" {
				data, err := rep.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				renderText(results, write, check)
				if write || check {
					ux.Summary(rep.Changed, rep.Unchanged, rep.FailedRegions, rep.Aborted)
				}
			}

			return exitPolicy(rep, check, strict)
		},
	}
}

// renderText prints per-file outcomes. Diagnostics always go to stderr so
// the default stdout mode emits nothing but formatted documents.
func renderText(results []pipeline.Result, write, check bool) {
	for _, res := range results {
		if res.Err != nil {
			var abortErr *document.AbortError
			if errors.As(res.Err, &abortErr) {
				ux.Aborted(abortErr.Diag)
			} else {
				ux.FileError(res.Path, res.Err)
			}
			continue
		}
		for _, d := range res.Diags {
			ux.Diag(d)
		}
		switch {
		case write && res.Changed:
			ux.Reformatted(res.Path)
		case check && res.Changed:
			ux.WouldReformat(res.Path)
		case !write && !check:
			os.Stdout.Write(res.Output)
		}
	}
}

func formatStdin(ctx context.Context, opts pipeline.Options, strict bool) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	res := pipeline.FormatDocument(ctx, "<stdin>", string(data), opts)
	if res.Err != nil {
		return res.Err
	}
	for _, d := range res.Diags {
		ux.Diag(d)
	}
	os.Stdout.Write(res.Output)
	if strict && len(res.Diags) > 0 {
		return fmt.Errorf("%d region(s) failed to format", len(res.Diags))
	}
	return nil
}

// exitPolicy decides the process outcome: document-scoped failures always
// fail the run; region failures only under strict; pending changes only
// under check.
func exitPolicy(rep *report.Report, check, strict bool) error {
	if rep.HasErrors() {
		return fmt.Errorf("some files could not be processed")
	}
	if strict && rep.FailedRegions > 0 {
		return fmt.Errorf("%d region(s) failed to format", rep.FailedRegions)
	}
	if check && rep.Changed > 0 {
		return fmt.Errorf("%d file(s) would be reformatted", rep.Changed)
	}
	return nil
}

// loadConfig finds and loads .rpyfmt.yaml. An empty path means "search
// upward from the working directory"; no file anywhere means defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = config.Find(cwd)
	}
	var cfg *config.Config
	var err error
	if path == "" {
		cfg = &config.Config{}
		err = config.Validate(cfg)
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a starter .rpyfmt.yaml in the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			path, err := scaffold.Init(dir)
			if err != nil {
				return err
			}
			fmt.Printf("created %s\n", path)
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Verify the engine and configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to .rpyfmt.yaml"},
			&cli.StringFlag{Name: "engine", Usage: "Override the configured engine binary"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}
			if e := cmd.String("engine"); e != "" {
				cfg.Engine = e
			}
			ux.Header("rpyfmt doctor")
			checks, err := doctor.Run(ctx, cfg, &engine.Black{Command: cfg.Engine})
			for _, c := range checks {
				ux.Check(c.Name, c.OK, c.Detail)
			}
			return err
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				fmt.Print("\nAvailable topics:\n\n")
				for _, t := range docs.All() {
					fmt.Printf("  %-12s %s\n", t.Name, t.Summary)
				}
				fmt.Println("\nRun 'rpyfmt docs <topic>' to read a topic.")
				return nil
			}
			t, err := docs.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(t.Content)
			return nil
		},
	}
}
