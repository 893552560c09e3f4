// Package logging multiplexes the standard logger to stdout and an
// append-only log file, and tags every exchange with a local service.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/localmind/localmind/internal/util"
)

// maxPayloadRunes keeps individual log lines readable when a payload carries
// whole document chunks.
const maxPayloadRunes = 2000

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stdout plus the file at logPath.
// An empty logPath keeps logging on stdout only.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stdout)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close detaches the log file and returns logging to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// LogEvent writes a formatted event line through the standard logger.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogRequest records one side of an exchange with a local service.
// direction is e.g. "MIND->OLLAMA" or "QDRANT->MIND".
func LogRequest(direction, service, model string, payload any) {
	msg := buildRequestMessage(direction, service, model, payload)
	log.Println(msg)
}

func buildRequestMessage(direction, service, model string, payload any) string {
	dir := strings.TrimSpace(direction)
	if dir != "" {
		dir = strings.ToUpper(dir)
	}
	serviceValue := strings.TrimSpace(service)
	if serviceValue == "" {
		serviceValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", dir)}
	parts = append(parts, fmt.Sprintf("service=%s", serviceValue))
	if model = strings.TrimSpace(model); model != "" {
		parts = append(parts, fmt.Sprintf("model=%s", model))
	}
	parts = append(parts, fmt.Sprintf("payload=%s", util.TruncateRunes(formatPayload(payload), maxPayloadRunes)))
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
