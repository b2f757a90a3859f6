/*
 * Copyright 2026 The data-helpers Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides leveled logging for the data mapper. The mapper
// only logs at DEBUG level during pipeline execution; production callers
// typically leave the default INFO level or install the discard logger.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Level defines log levels.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	// OFF disables logging entirely.
	OFF
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case OFF:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// Logger is the logging interface the mapper writes to.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetLevel(level Level)
}

type defaultLogger struct {
	level  Level
	logger *log.Logger
}

// NewLogger creates a logger writing to output at the given level.
func NewLogger(level Level, output io.Writer) Logger {
	return &defaultLogger{
		level:  level,
		logger: log.New(output, "", 0),
	}
}

func (l *defaultLogger) Debug(format string, args ...any) { l.log(DEBUG, format, args...) }
func (l *defaultLogger) Info(format string, args ...any)  { l.log(INFO, format, args...) }
func (l *defaultLogger) Warn(format string, args ...any)  { l.log(WARN, format, args...) }
func (l *defaultLogger) Error(format string, args ...any) { l.log(ERROR, format, args...) }

func (l *defaultLogger) SetLevel(level Level) { l.level = level }

func (l *defaultLogger) log(level Level, format string, args ...any) {
	if l.level == OFF || level < l.level {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("[%s] [%s] %s", timestamp, level.String(), fmt.Sprintf(format, args...))
}

// discardLogger swallows all output.
type discardLogger struct{}

// NewDiscardLogger creates a logger that discards everything.
func NewDiscardLogger() Logger { return &discardLogger{} }

func (d *discardLogger) Debug(format string, args ...any) {}
func (d *discardLogger) Info(format string, args ...any)  {}
func (d *discardLogger) Warn(format string, args ...any)  {}
func (d *discardLogger) Error(format string, args ...any) {}
func (d *discardLogger) SetLevel(level Level)             {}

var defaultInstance Logger = NewLogger(INFO, os.Stdout)

// SetDefault replaces the global default logger.
func SetDefault(logger Logger) {
	defaultInstance = logger
}

// GetDefault returns the global default logger.
func GetDefault() Logger {
	return defaultInstance
}
