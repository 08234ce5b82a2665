// Package logging constructs the process-wide slog logger: a console
// handler for interactive use, JSON for pipes and files, with "auto"
// choosing between them via TTY detection. The "component" attribute is
// promoted into the console prefix.
package logging
