// Command renamer previews batch file renames. It reads each file's
// metadata, applies one naming transform and prints the resulting plan
// without touching the files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/backmassage/renamer/internal/batch"
	"github.com/backmassage/renamer/internal/check"
	"github.com/backmassage/renamer/internal/config"
	"github.com/backmassage/renamer/internal/decode"
	"github.com/backmassage/renamer/internal/display"
	"github.com/backmassage/renamer/internal/logging"
	"github.com/backmassage/renamer/internal/metadata"
	"github.com/backmassage/renamer/internal/metrics"
	"github.com/backmassage/renamer/internal/pipeline"
	"github.com/backmassage/renamer/internal/probe"
	"github.com/backmassage/renamer/internal/term"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "0.1.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.Run(args); err != nil {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			if msg := err.Error(); msg != "" {
				fmt.Fprintf(stderr, "renamer: %s\n", msg)
			}
			return exit.ExitCode()
		}
		fmt.Fprintf(stderr, "renamer: %v\n", err)
		return 1
	}
	return 0
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "renamer",
		Usage:     "Preview batch file renames driven by file metadata",
		Version:   fmt.Sprintf("%s (%s)", version, commit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     config.GlobalFlags(),
		// Exit codes are handled by run.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Usage:     "Compute new names for the given files and directories",
				ArgsUsage: "PATH...",
				Flags:     config.PlanFlags(),
				Action:    planAction,
			},
			{
				Name:      "inspect",
				Usage:     "Show the metadata each file would be renamed from",
				ArgsUsage: "PATH...",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: config.FlagRecursive, Aliases: []string{"r"}, Usage: "Descend into directories"},
				},
				Action: inspectAction,
			},
			{
				Name:   "check",
				Usage:  "Report ffprobe availability and supported file types",
				Action: checkAction,
			},
		},
	}
}

// session is the state shared by every command once flags are resolved.
type session struct {
	cfg     config.Config
	log     *logging.Logger
	metrics *metrics.Metrics
	out     io.Writer
	errOut  io.Writer
}

// setup resolves the config (defaults, then file, then flags), validates it
// when the command works on paths and opens the logger. Errors before the
// logger exists are returned to run, which prints them to stderr.
func setup(c *cli.Context, validate bool) (*session, error) {
	cfg := config.DefaultConfig()
	if err := config.LoadFile(c.String(config.FlagConfig), &cfg); err != nil {
		return nil, err
	}
	if err := config.FromContext(c, &cfg); err != nil {
		return nil, err
	}
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		return nil, err
	}
	display.PrintBanner(c.App.ErrWriter, version)

	return &session{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
		out:     c.App.Writer,
		errOut:  c.App.ErrWriter,
	}, nil
}

func (s *session) close() {
	if s.cfg.MetricsFile != "" {
		if err := s.metrics.WriteFile(s.cfg.MetricsFile); err != nil {
			s.log.Error("Cannot write metrics: %v", err)
		}
	}
	s.log.Close()
}

// decoders builds the metadata stack. ffprobe is used for video
// containers when it is on PATH.
func (s *session) decoders() (*probe.Prober, *decode.Router, *metadata.Chain) {
	prober := &probe.Prober{}
	opts := []decode.Option{decode.WithLogger(s.log)}
	if path, ok := prober.Available(); ok {
		s.log.Debug("Using ffprobe at %s", path)
		opts = append(opts, decode.WithProber(prober))
	} else {
		s.log.Debug("ffprobe not found; Matroska and WebM files will have no metadata")
	}
	router := decode.NewRouter(afero.NewOsFs(), opts...)
	return prober, router, metadata.DefaultChain(router, s.log)
}

func (s *session) env() pipeline.Env {
	_, _, chain := s.decoders()
	tty := false
	if f, ok := s.errOut.(*os.File); ok {
		tty = term.IsTerminal(f)
	}
	return pipeline.Env{
		Fs:        afero.NewOsFs(),
		Extractor: chain,
		Log:       s.log,
		Metrics:   s.metrics,
		Progress: func(stage string) batch.ProgressFunc {
			return display.NewProgress(s.errOut, tty, stage).Update
		},
	}
}

// signalContext is cancelled on SIGINT/SIGTERM so the batch stops between
// files.
func signalContext(log *logging.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Received interrupt, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func planAction(c *cli.Context) error {
	s, err := setup(c, true)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := signalContext(s.log)
	defer cancel()

	res, err := pipeline.Run(ctx, &s.cfg, s.env())
	if err != nil {
		s.log.Error("%v", err)
		return cli.Exit("", 1)
	}
	if err := display.PrintPlan(s.out, res.Plans, s.cfg.Output); err != nil {
		return err
	}
	if !res.Stats.OK() {
		return cli.Exit("", 1)
	}
	return nil
}

func inspectAction(c *cli.Context) error {
	s, err := setup(c, true)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := signalContext(s.log)
	defer cancel()

	records, stats, err := pipeline.Inspect(ctx, &s.cfg, s.env())
	if err != nil {
		s.log.Error("%v", err)
		return cli.Exit("", 1)
	}
	display.PrintRecords(s.out, records)
	if !stats.OK() {
		return cli.Exit("", 1)
	}
	return nil
}

func checkAction(c *cli.Context) error {
	s, err := setup(c, false)
	if err != nil {
		return err
	}
	defer s.close()

	prober, router, chain := s.decoders()
	check.RunCheck(s.log, prober, router, chain)
	return nil
}
