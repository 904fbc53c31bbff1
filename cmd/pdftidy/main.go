package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dockeep/pdftidy/internal/config"
	"github.com/dockeep/pdftidy/internal/menu"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the configured level.
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}
}

func printVersion() {
	fmt.Printf("pdftidy %s (built %s, commit %s)\n", version, buildTime, gitCommit)
}

func run() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return nil
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		return err
	}
	cfg.Version = version

	setupLogging(cfg)
	log.Printf("starting pdftidy: %s", cfg)

	op, err := menu.Select(cfg.Operation, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	ok, err := menu.Confirm(op, cfg.AssumeYes, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		log.Println("aborted, nothing changed")
		return nil
	}

	return menu.NewRunner(cfg).Run(op)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
