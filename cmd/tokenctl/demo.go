package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-token/event"
	"github.com/pflow-xyz/go-token/journal"
	"github.com/pflow-xyz/go-token/ledger"
	"github.com/pflow-xyz/go-token/token"
)

func demo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file (TOML)")
	journalPath := fs.String("journal", "", "Journal database path (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: tokenctl demo [options]

Runs the delegated-balance-access scenario: mint to alice, grant bob
access, redirect bob's balance view, transfer as bob, then revoke.
Notifications are recorded to the journal.

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
	logger := initLogger(cfg.LogLevel)

	store, err := journal.NewSQLiteStore(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer store.Close()

	bus := event.NewBus()
	journal.NewRecorder(store, logger).Attach(bus)

	tok := token.New(bus)
	if err := runScenario(tok); err != nil {
		return err
	}
	bus.Drain()

	const (
		alice = ledger.Address("alice")
		bob   = ledger.Address("bob")
		carol = ledger.Address("carol")
	)

	fmt.Printf("%s (%s), %d decimals\n", token.Name, token.Symbol, token.Decimals)
	fmt.Printf("total supply: %s\n", tok.TotalSupply().Dec())
	for _, a := range []ledger.Address{alice, bob, carol} {
		fmt.Printf("  %-6s raw=%-6s redirected=%-6s active=%s\n",
			a, tok.AddressBalanceOf(a).Dec(), tok.BalanceOf(a).Dec(), tok.ActiveBalanceHolderOf(a))
	}

	stats := bus.Stats()
	logger.Info().
		Int64("published", stats.Published).
		Int64("delivered", stats.Delivered).
		Int64("dropped", stats.Dropped).
		Msg("notification bus")
	return nil
}

// runScenario drives the token through the shared-access flow.
func runScenario(tok *token.Token) error {
	const (
		alice = ledger.Address("alice")
		bob   = ledger.Address("bob")
		carol = ledger.Address("carol")
	)

	if err := tok.Mint(alice, uint256.NewInt(1000)); err != nil {
		return err
	}
	if err := tok.ShareBalanceAccess(alice, bob); err != nil {
		return err
	}
	if err := tok.SetActiveBalanceHolder(bob, alice); err != nil {
		return err
	}
	// Bob now spends alice's balance through his own identity.
	if err := tok.Transfer(bob, carol, uint256.NewInt(200)); err != nil {
		return err
	}
	if err := tok.RevokeBalanceAccess(alice, bob); err != nil {
		return err
	}
	return nil
}
