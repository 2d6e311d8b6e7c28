package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"lingolog.app/backend/internal/cli"
	"lingolog.app/backend/internal/records"
)

func runHistory(args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, ".env", "Path to the .env file")
	timeout := fs.Duration("timeout", 30*time.Second, "Command timeout")
	kindFlag := fs.String("kind", "translation", "Record kind (translation or comparison)")
	limit := fs.Int("limit", records.DefaultHistoryLimit, "Number of records to print")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	kind, ok := records.ParseKind(*kindFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "--kind must be %q or %q\n", records.KindTranslation, records.KindComparison)
		return 2
	}
	if *limit < 1 {
		fmt.Fprintln(os.Stderr, "--limit must be >= 1")
		return 2
	}

	ctx, cancel, _, pool, err := connect(*timeout, envLoader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cancel()
	defer pool.Close()

	store := records.NewStore(pool)

	var items []records.Record
	if kind == records.KindComparison {
		items, err = store.ListRecentComparisons(ctx, *limit)
	} else {
		items, err = store.ListRecentTranslations(ctx, *limit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "History failed: %v\n", err)
		return 1
	}

	if len(items) == 0 {
		fmt.Println("no records")
		return 0
	}

	for _, item := range items {
		score := "-"
		if item.Score != nil {
			score = fmt.Sprintf("%.1f", *item.Score)
		}
		fmt.Printf(
			"%s  [%s/%s]  score=%s  %q -> %q\n",
			item.CreatedAt.UTC().Format(time.RFC3339),
			item.Model,
			item.Language,
			score,
			item.OriginalMessage,
			item.TranslatedMessage,
		)
	}
	return 0
}
