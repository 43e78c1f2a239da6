// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first via godotenv; real
environment variables take precedence over it, and CLI flags take
precedence over both.

# Config Fields

  - Port: Server listen port (default: 3319)
  - StoreBackend: memory, badger (default), sqlite or postgres
  - DataDir: Badger data directory (default: "data" for badger backend)
  - DatabaseURL: Connection string (required for sqlite/postgres)
  - IdentitySalt: Secret for identity token HMAC (required)

# CLI Flags

	-p              Server port
	-s              Store backend
	-d              Data directory
	-u              Database URL
	--identity-salt Identity token salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	STORE_BACKEND → -s
	DATA_DIR      → -d
	DATABASE_URL  → -u
	IDENTITY_SALT → --identity-salt

# Validation

ParseFlags returns an error if required values are missing:

  - STORE_BACKEND must be one of the known backends
  - DATABASE_URL must be provided for sqlite/postgres
  - IDENTITY_SALT must be provided
*/
package cliparse
