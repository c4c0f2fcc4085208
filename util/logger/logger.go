// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logger is a small hierarchical leveled logger for the module's
// command-line programs. Loggers form a tree rooted at Default: an event
// logged on a child is also delivered to every ancestor's writers, so a
// demo program can open its own named logger under Default and still have
// messages reach whatever writer Default carries.
package logger

import (
	"fmt"
	"sync"
	"time"
)

// Level filters which messages a logger emits: a message below the
// logger's current level is dropped before it reaches any writer.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// Writer receives formatted log lines from one or more loggers.
type Writer interface {
	Write(line string)
}

// Event carries one log call's already-formatted line up the logger tree.
type Event struct {
	time  time.Time
	level Level
	line  string
}

// Logger is one node of the logging tree.
type Logger struct {
	path    string
	level   Level
	writers []Writer
	parent  *Logger
}

// Default is the root logger every command-line program logs through,
// directly or via a child created with New.
var Default *Logger

var mutex sync.Mutex

func init() {
	Default = &Logger{path: "strata", level: INFO}
	Default.AddWriter(NewConsole())
}

// New creates a logger named name under parent, inheriting parent's level.
// A nil parent creates a detached root logger.
func New(name string, parent *Logger) *Logger {
	l := &Logger{path: name, level: ERROR}
	if parent != nil {
		l.path = parent.path + "/" + name
		l.level = parent.level
		l.parent = parent
	}
	return l
}

// SetLevel sets the lowest level this logger will emit.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// AddWriter attaches a writer that receives every event this logger emits,
// in addition to whatever its ancestors' writers receive.
func (l *Logger) AddWriter(w Writer) {
	l.writers = append(l.writers, w)
}

// Debug emits a DEBUG level message.
func (l *Logger) Debug(format string, v ...interface{}) { l.log(DEBUG, format, v...) }

// Info emits an INFO level message.
func (l *Logger) Info(format string, v ...interface{}) { l.log(INFO, format, v...) }

// Warn emits a WARN level message.
func (l *Logger) Warn(format string, v ...interface{}) { l.log(WARN, format, v...) }

// Error emits an ERROR level message.
func (l *Logger) Error(format string, v ...interface{}) { l.log(ERROR, format, v...) }

// Fatal emits a FATAL level message and panics.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(FATAL, format, v...)
	panic(fmt.Sprintf(format, v...))
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	if level < l.level {
		return
	}

	now := time.Now().UTC()
	line := fmt.Sprintf("%s %-5s %s: %s",
		now.Format("15:04:05.000000"), levelNames[level], l.path, fmt.Sprintf(format, v...))
	event := Event{time: now, level: level, line: line}

	mutex.Lock()
	defer mutex.Unlock()
	for cur := l; cur != nil; cur = cur.parent {
		for _, w := range cur.writers {
			w.Write(event.line)
		}
	}
}
