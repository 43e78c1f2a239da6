package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	StoreBackend string
	DataDir      string
	DatabaseURL  string
	IdentitySalt string
}

// Store backends accepted by -s / STORE_BACKEND.
var validBackends = map[string]bool{
	"memory":   true,
	"badger":   true,
	"sqlite":   true,
	"postgres": true,
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Load .env if present; real env variables win
	_ = godotenv.Load()

	fs := flag.NewFlagSet("one-ballot", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreBackend, "s", "", "Store backend (memory, badger, sqlite or postgres)")
	fs.StringVar(&cfg.DataDir, "d", "", "Data directory (badger backend)")
	fs.StringVar(&cfg.DatabaseURL, "u", "", "Database URL (sqlite or postgres backend)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IdentitySalt, "identity-salt", "", "Identity token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3319 // default
		}
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = os.Getenv("STORE_BACKEND")
		if cfg.StoreBackend == "" {
			cfg.StoreBackend = "badger"
		}
	}
	if !validBackends[cfg.StoreBackend] {
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("DATA_DIR")
	}
	if cfg.StoreBackend == "badger" && cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if (cfg.StoreBackend == "sqlite" || cfg.StoreBackend == "postgres") && cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -u or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.IdentitySalt == "" {
		cfg.IdentitySalt = os.Getenv("IDENTITY_SALT")
	}
	if cfg.IdentitySalt == "" {
		return Config{}, errors.New("IDENTITY_SALT required")
	}

	return cfg, nil
}
