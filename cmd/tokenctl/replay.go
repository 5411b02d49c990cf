package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-token/journal"
)

func replay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (TOML)")
	journalPath := fs.String("journal", "", "Journal database path (overrides config)")
	fromSeq := fs.Int64("from", 1, "First sequence number to print")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenctl replay [options]

Prints journal entries in order.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *journalPath != "" {
		cfg.JournalPath = *journalPath
	}

	store, err := journal.NewSQLiteStore(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Read(context.Background(), *fromSeq)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%6d  %-22s  %s  %s\n", e.Seq, e.Type, e.At.Format("2006-01-02 15:04:05"), e.Payload)
	}
	fmt.Printf("%d entries\n", len(entries))
	return nil
}
