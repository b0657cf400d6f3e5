// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads and merges the application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged with dario.cat/mergo in priority order (environment
// first, then flags, then the JSON file), so earlier sources win for fields
// they set. The main entry point is [GetStructuredConfig], which returns a
// validated [StructuredConfig] ready for dependency wiring at startup.
package config
