package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	instagram "github.com/anatolykoptev/go-instagram"
	"github.com/anatolykoptev/go-instagram/export"
	"github.com/anatolykoptev/go-instagram/report"
)

type options struct {
	username   string
	sessionID  string
	output     string
	format     string
	tutorial   bool
	configPath string
	proxy      string
	verbose    bool
	noColor    bool
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "osintgram",
		Short:         "Assemble an Instagram profile dossier",
		Long:          `Resolves an Instagram username, collects its profile details and exports them as JSON or CSV.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), in, out, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.username, "username", "u", "", "Instagram username (with or without @)")
	f.StringVarP(&opts.sessionID, "sessionid", "s", "", "Instagram session ID (default $"+sessionEnv+")")
	f.StringVarP(&opts.output, "output", "o", "", "output file, without extension")
	f.StringVarP(&opts.format, "format", "f", string(export.FormatJSON), "export format: json or csv")
	f.BoolVar(&opts.tutorial, "tutorial", false, "show how to get a session ID")
	f.StringVar(&opts.configPath, "config", "", "YAML config file")
	f.StringVar(&opts.proxy, "proxy", "", "proxy URL for all requests")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	return cmd
}

func run(ctx context.Context, in io.Reader, out io.Writer, opts options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	styles := report.Colored()
	if opts.noColor {
		styles = report.Plain()
	}
	renderer := report.New(styles)

	if opts.tutorial {
		fmt.Fprint(out, styles.Header.Render(banner))
		fmt.Fprint(out, styles.Info.Render(tutorial))
		return nil
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if err := loadDotenv(); err != nil {
		slog.Warn("ignoring .env", slog.Any("error", err))
	}
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.proxy != "" {
		cfg.Proxy = opts.proxy
	}

	client, err := instagram.NewClient(cfg)
	if err != nil {
		return err
	}

	s := newSession(in, out, nil, renderer)
	s.defaultSessionID = os.Getenv(sessionEnv)
	cfg.ProgressHook = s.onProgress
	s.inv = instagram.NewInvestigator(client, cfg)

	sessionID := opts.sessionID
	if sessionID == "" {
		sessionID = s.defaultSessionID
	}
	if opts.username != "" && sessionID != "" {
		fmt.Fprint(out, styles.Header.Render(banner))
		return s.runOnce(ctx, opts.username, sessionID, opts.output, format)
	}
	return s.interactive(ctx)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	// After the first signal, restore default handling so a second one kills the process.
	context.AfterFunc(ctx, cancel)

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		var shown shownError
		if !errors.As(err, &shown) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		cancel()
		os.Exit(1)
	}
}
