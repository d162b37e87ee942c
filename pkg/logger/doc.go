// Package logger builds configured log/slog loggers for the admin tools:
// text or JSON encoding, level selection and static attributes, through
// functional options.
package logger
