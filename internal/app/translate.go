package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"lingolog.app/backend/internal/cli"
	"lingolog.app/backend/internal/logging"
	"lingolog.app/backend/internal/records"
	"lingolog.app/backend/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 2*time.Minute, "Command timeout")
	lang := fs.String("lang", "", "Target language display name (for example: French)")
	model := fs.String("model", "", "Provider model key (deepl, gpt-4o-mini, gemini-2.0-flash, ...)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "translate requires one message argument")
		printTranslateUsage()
		return 2
	}

	text := strings.TrimSpace(fs.Arg(0))
	if text == "" {
		fmt.Fprintln(os.Stderr, "translate message must not be empty")
		return 2
	}
	if strings.TrimSpace(*lang) == "" {
		fmt.Fprintln(os.Stderr, "--lang is required")
		return 2
	}
	if strings.TrimSpace(*model) == "" {
		fmt.Fprintln(os.Stderr, "--model is required")
		return 2
	}

	ctx, cancel, cfg, pool, err := connect(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}

	store := records.NewStore(pool)
	registry := translation.NewRegistryFromConfig(cfg)
	gateway := translation.NewGateway(registry, store, logger)

	outcome, err := gateway.Translate(ctx, text, *lang, *model)
	switch {
	case err == nil:
	case errors.Is(err, translation.ErrRecordNotSaved):
		// The translation itself succeeded; print it before failing.
		fmt.Println(outcome.TranslatedText)
		fmt.Fprintf(os.Stderr, "Warning: record was not saved: %v\n", err)
		return 1
	case records.IsValidation(err):
		fmt.Fprintf(os.Stderr, "Invalid request: %v\n", err)
		return 2
	case translation.IsUpstream(err):
		fmt.Fprintf(os.Stderr, "Translation failed: %v\n", err)
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Translate failed: %v\n", err)
		return 1
	}

	fmt.Println(outcome.TranslatedText)
	fmt.Printf(
		"stored record_uuid=%s model=%s language=%s\n",
		outcome.Record.RecordUUID,
		outcome.Record.Model,
		outcome.Record.Language,
	)
	return 0
}

func printTranslateUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  lingolog translate --lang <language> --model <key> [--env .env] [--timeout 2m] <message>")
}
