// Package config loads vuegen configuration.
//
// Configuration is layered with koanf, later layers overriding earlier ones:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the workspace config file, .vuegen.toml or .vuegen.yaml, or an
//     explicitly given file
//  3. VUEGEN_* entries of the workspace .env file
//  4. VUEGEN_* environment variables
//  5. explicit overrides, usually CLI flags
//
// Environment keys use a double underscore between section and key:
// VUEGEN_TEMPLATES__MISSING_PLACEHOLDER=empty sets templates.missing_placeholder.
package config
