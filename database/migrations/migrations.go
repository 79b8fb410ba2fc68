// Package migrations holds the schema history. Each migration registers
// itself in an init func; cmd/bikeshop blank-imports this package so the
// registry is populated before the CLI runs.
package migrations
