package config

import (
	"flag"
	"os"
	"time"

	"github.com/jfmartinez/credvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   path to the SQLite vault file (default from Config)
//	-t int      hash timeout in seconds (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "path to the vault database file")
	hashTimeout := fs.Int("t", int(cfg.HashTimeout.Seconds()), "hash timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HashTimeout = time.Duration(*hashTimeout) * time.Second
}
