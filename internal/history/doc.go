// Package history keeps an append-only SQLite log of per-source outcomes
// so past runs stay inspectable after the console output is gone.
package history
