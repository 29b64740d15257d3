/*
 * Copyright 2025 tomoncle.
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

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Logger = logrus.Logger

var (
	defaultLevel     = logrus.InfoLevel
	loggerRegistryMu sync.RWMutex
	loggerRegistry   = map[string]*logrus.Logger{}
	consoleLogFormat = EnvDefaultString("CONSOLE_LOG_FORMAT", "text")
)

// NewLogger returns a named logrus logger writing to stdout with the
// project's console formatter. Loggers are registered by name so their
// level can be adjusted later via SetLoggerLevel.
func NewLogger(name string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(defaultLevel)
	l.SetReportCaller(true)
	if consoleLogFormat == "json" {
		l.SetFormatter(&JSONLogFormatter{
			LoggerName:      name,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	} else {
		l.SetFormatter(&ConsoleLogFormatter{
			LoggerName:      name,
			TimestampFormat: "2006-01-02 15:04:05.000",
			NameWidth:       10,
		})
	}
	RegisterLogger(name, l)
	return l
}

// RegisterLogger records a named logger in the process-wide registry.
func RegisterLogger(name string, l *logrus.Logger) {
	loggerRegistryMu.Lock()
	defer loggerRegistryMu.Unlock()
	loggerRegistry[name] = l
}

// SetLoggerLevel changes the level of a registered logger. It returns false
// when no logger with that name exists.
func SetLoggerLevel(name string, lvlStr string) bool {
	lvl := ParseLogLevel(lvlStr)
	loggerRegistryMu.RLock()
	lg, ok := loggerRegistry[name]
	loggerRegistryMu.RUnlock()
	if !ok {
		return false
	}
	lg.SetLevel(lvl)
	return true
}

// SetAllLoggersLevel applies the level to every registered logger and to
// loggers created afterwards.
func SetAllLoggersLevel(lvlStr string) {
	lvl := ParseLogLevel(lvlStr)
	loggerRegistryMu.RLock()
	for _, lg := range loggerRegistry {
		lg.SetLevel(lvl)
	}
	loggerRegistryMu.RUnlock()
	defaultLevel = lvl
	logrus.SetLevel(lvl)
}

// ParseLogLevel maps a level name to a logrus level, defaulting to Info.
func ParseLogLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "info", "":
		return logrus.InfoLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

// ConsoleLogFormatter renders log4j-style colored lines:
// timestamp level pid - name caller : message.
type ConsoleLogFormatter struct {
	LoggerName      string
	TimestampFormat string
	NameWidth       int
}

func (f *ConsoleLogFormatter) tsFormat() string {
	if f.TimestampFormat != "" {
		return f.TimestampFormat
	}
	return "2006-01-02 15:04:05.000"
}

func (f *ConsoleLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	ts := time.Now().Format(f.tsFormat())
	lvl := padLeft(strings.ToUpper(entry.Level.String()), 7)
	coloredLvl := colorLevel(lvl, entry.Level)
	pid := colorMagenta(fmt.Sprintf("%-6d", os.Getpid()))
	name := colorCyan(padLeft(limitRunes(f.LoggerName, f.NameWidth), f.NameWidth))

	callerInfo := ""
	if entry.Caller != nil {
		base := filepath.Base(entry.Caller.File)
		callerInfo = colorFaint(fmt.Sprintf(" %s:%d", base, entry.Caller.Line))
	}

	msg := entry.Message
	if len(entry.Data) > 0 {
		msg += " " + joinFields(entry.Data)
	}

	line := fmt.Sprintf("%s %s %s - %s%s %s %s\n", ts, coloredLvl, pid, name, callerInfo, colorFaint(":"), msg)
	return []byte(line), nil
}

// JSONLogFormatter renders one JSON object per line.
type JSONLogFormatter struct {
	LoggerName      string
	TimestampFormat string
}

func (f *JSONLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = "2006-01-02 15:04:05.000"
	}
	caller := ""
	if entry.Caller != nil {
		caller = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	rec := struct {
		Time    string                 `json:"time"`
		Level   string                 `json:"level"`
		Name    string                 `json:"name"`
		Caller  string                 `json:"caller"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields,omitempty"`
	}{
		Time:    time.Now().Format(tsFormat),
		Level:   strings.ToLower(entry.Level.String()),
		Name:    f.LoggerName,
		Caller:  caller,
		Message: entry.Message,
	}
	if len(entry.Data) > 0 {
		rec.Fields = entry.Data
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func joinFields(data logrus.Fields) string {
	var sb strings.Builder
	for k, v := range data {
		sb.WriteString(fmt.Sprintf("%s=%v ", k, v))
	}
	return strings.TrimSpace(sb.String())
}

func padLeft(s string, width int) string { return fmt.Sprintf("%"+fmt.Sprintf("%d", width)+"s", s) }

func limitRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

const (
	ansiReset   = "\x1b[0m"
	ansiFaint   = "\x1b[2m"
	ansiRed     = "\x1b[31m"
	ansiYellow  = "\x1b[33m"
	ansiGreen   = "\x1b[32m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
)

func colorWrap(s, code string) string { return code + s + ansiReset }

func colorMagenta(s string) string { return colorWrap(s, ansiMagenta) }

func colorCyan(s string) string { return colorWrap(s, ansiCyan) }

func colorFaint(s string) string { return colorWrap(s, ansiFaint) }

func colorLevel(s string, level logrus.Level) string {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorWrap(s, ansiRed)
	case logrus.WarnLevel:
		return colorWrap(s, ansiYellow)
	case logrus.InfoLevel:
		return colorWrap(s, ansiGreen)
	case logrus.DebugLevel:
		return colorWrap(s, ansiBlue)
	default:
		return colorWrap(s, ansiMagenta)
	}
}

// EnvDefaultString returns the environment value for key, or def when unset.
func EnvDefaultString(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvDefaultBool returns the boolean environment value for key, or def when unset.
func EnvDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, _ := strconv.ParseBool(v)
		return b
	}
	return def
}
