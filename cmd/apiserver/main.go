// apiserver runs the prazo-engine HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jurisdesk/prazo-engine/internal/config"
	"github.com/jurisdesk/prazo-engine/internal/interfaces/cli"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	autoMigrate := flag.Bool("auto-migrate", false, "apply pending migrations before serving")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	watchPath := *configPath
	if _, err := os.Stat(watchPath); err != nil {
		watchPath = ""
	}

	if err := cli.RunServe(context.Background(), cfg, *autoMigrate, watchPath); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if path != defaultConfigPath {
			return nil, err
		}
		// No config file; environment variables and defaults apply.
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
