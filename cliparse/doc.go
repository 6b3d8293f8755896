// Copyright (c) 2026 Creator Hub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration parsing for embedding
applications and test harnesses.

# Configuration

Load returns a Config struct with all settings:

	cfg, err := cliparse.Load(os.Args[1:])

# Config Fields

  - StoreDriver: memory, sqlite, or postgres (default: memory)
  - DatabaseURL: connection string, required for the SQL drivers
  - IdentitySalt: secret for identity token HMAC (required)

# CLI Flags

	-t              Store driver
	-d              Database URL
	--identity-salt Identity token salt

# Environment Variables

Flags fall back to environment variables, and a .env file is loaded
first via github.com/joho/godotenv:

	STORE_DRIVER  → -t
	DATABASE_URL  → -d
	IDENTITY_SALT → --identity-salt

CLI flags take precedence over environment variables.

# Validation

Load returns an error if the driver is unknown, if a SQL driver has no
DatabaseURL, or if IdentitySalt is missing.
*/
package cliparse
