// Package config builds the letshang runtime configuration.
//
// Sources are applied in order, later ones winning:
//
//  1. built-in defaults (LoadDefaults)
//  2. a .env file and the process environment (LETSHANG_* variables)
//  3. an optional JSON file given with -c or -config
//  4. command-line flags
package config
