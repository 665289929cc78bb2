package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/drywaters/textsum/internal/client"
	"github.com/drywaters/textsum/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("textsum-cli", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringP("server", "s", "", "textsum server URL (env TEXTSUM_SERVER_URL)")
	file := flags.StringP("file", "f", "", "read text from `path` instead of arguments or stdin")
	noColor := flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage: textsum-cli [flags] [text...]")
		fmt.Fprintln(stderr, "Summarizes text from arguments, --file, or stdin.")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if *noColor {
		color.NoColor = true
	}
	errColor := color.New(color.FgRed, color.Bold)

	v := viper.New()
	if f := flags.Lookup("server"); f.Changed {
		_ = v.BindPFlag("server_url", f)
	}
	if f := flags.Lookup("log-level"); f.Changed {
		_ = v.BindPFlag("log_level", f)
	}
	cfg, err := config.LoadClient(v)
	if err != nil {
		errColor.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	setupLogging(cfg.LogLevel, stderr)

	text, err := readInput(*file, flags.Args(), stdin)
	if err != nil {
		errColor.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if strings.TrimSpace(text) == "" {
		errColor.Fprintln(stderr, client.MsgEmptyInput)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(client.NewAPIClient(cfg.ServerURL, nil))
	c.Subscribe(func(s client.State) {
		if s.Loading() {
			color.New(color.Faint).Fprintln(stderr, "Summarizing...")
		}
	})
	c.UpdateInput(text)
	c.Submit(ctx)

	view := c.View()
	switch view.Kind {
	case client.ViewSummary:
		fmt.Fprintln(stdout, strings.TrimRight(view.Text, "\n"))
		return 0
	case client.ViewError:
		errColor.Fprintln(stderr, view.Text)
	default:
		errColor.Fprintln(stderr, client.MsgFailed)
	}
	return 1
}

func readInput(path string, args []string, stdin io.Reader) (string, error) {
	switch {
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

func setupLogging(level string, w io.Writer) {
	logLevel := slog.LevelWarn
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})))
}
