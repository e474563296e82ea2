package handlers

import (
	"dav/internal/shared/logger"
)

// nopLogger satisfies logger.Interface without recording anything. Handler
// tests assert on responses, not on log lines.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any)            {}
func (nopLogger) Info(string, ...any)             {}
func (nopLogger) Warn(string, ...any)             {}
func (nopLogger) Error(string, ...any)            {}
func (nopLogger) Fatal(string, ...any)            {}
func (l nopLogger) With(...any) logger.Interface  { return l }
func (l nopLogger) Named(string) logger.Interface { return l }
func (nopLogger) Debugw(string, ...interface{})   {}
func (nopLogger) Infow(string, ...interface{})    {}
func (nopLogger) Warnw(string, ...interface{})    {}
func (nopLogger) Errorw(string, ...interface{})   {}
func (nopLogger) Fatalw(string, ...interface{})   {}
