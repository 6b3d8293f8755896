package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	StoreDriver  string
	DatabaseURL  string
	IdentitySalt string
}

// Load validates flags and resolves the store configuration.
// Flags win over environment variables; a .env file is read first so
// local development doesn't need exported variables.
func Load(args []string) (Config, error) {
	_ = godotenv.Load() // best effort

	var cfg Config

	fs := flag.NewFlagSet("pulse", flag.ContinueOnError)
	fs.StringVar(&cfg.StoreDriver, "t", "", "Store driver (memory, sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IdentitySalt, "identity-salt", "", "Identity token salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = os.Getenv("STORE_DRIVER")
	}
	if cfg.StoreDriver == "" {
		cfg.StoreDriver = DriverMemory
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	switch cfg.StoreDriver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown store driver %q (use memory, sqlite or postgres)", cfg.StoreDriver)
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
