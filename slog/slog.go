// Package slog provides logging decorators for the chatpage interfaces.
// Each decorator logs one line per call with its duration and error.
package slog
