// Package config handles loading and parsing tote's configuration file.
//
// # Overview
//
// This package reads tote's TOML configuration to discover the storefront
// API endpoint and the local data directory. Configuration is intentionally
// tiny: everything else the client needs comes from the API itself.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tote/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/tote/config.toml
//   - API endpoint: 127.0.0.1:4000
//   - Data directory: ~/.local/share/tote
//
// # TOML Format
//
// Example config.toml:
//
//	api_base = "shop.example.com:4000"
//	data_dir = "~/.local/share/tote"
//
// Both fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for path expansion failures, file read errors (except
// os.ErrNotExist, which triggers defaults), and TOML parsing errors.
// Missing config files are NOT an error; tote works out-of-the-box against
// a local development server without any configuration.
//
// The package is read-only and stateless: configuration is loaded once at
// startup and returned as an immutable Config struct.
package config
