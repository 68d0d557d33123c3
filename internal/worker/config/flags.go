package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/flagx"
)

// parseFlags populates selected worker Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-g string   Google OAuth client id
//	-s string   Google OAuth client secret
//	-e string   Expo push access token
//	-l string   target calendar id (default "primary")
//	-r int      delivery retry cap
//	-i int      pass interval, minutes (0 runs a single pass)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the -c/-config flags handled by
// the JSON loader. Duration flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-g", "-s", "-e", "-l", "-r", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.GoogleClientID, "g", config.GoogleClientID, "Google OAuth client id")
	fs.StringVar(&config.GoogleClientSecret, "s", config.GoogleClientSecret, "Google OAuth client secret")
	fs.StringVar(&config.ExpoAccessToken, "e", config.ExpoAccessToken, "Expo access token")
	fs.StringVar(&config.CalendarID, "l", config.CalendarID, "calendar id")
	fs.IntVar(&config.RetryCap, "r", config.RetryCap, "delivery retry cap")

	runInterval := fs.Int("i", int(config.RunInterval.Minutes()), "run interval (in minutes, 0 = single pass)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RunInterval = time.Duration(*runInterval) * time.Minute
}
