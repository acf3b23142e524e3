package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/flagx"
)

// parseFlags populates Config fields from -a, -d and -i. Unknown arguments
// are dropped by flagx.FilterArgs first; parse errors panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the blog API")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local session database")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
