package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Log files are cut back to their newest logTrimBytes once they pass
// logMaxBytes.
const (
	logMaxBytes  = 6 << 20
	logTrimBytes = 5 << 20
)

// logFilePath resolves a configured log path. A directory, existing or
// written with a trailing separator, gets one file per store backend so
// servers sharing a log directory do not interleave.
func logFilePath(path, backend string) string {
	name := "taskpad-" + backend + ".log"
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return filepath.Join(path, name)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, name)
	}
	return path
}

// cappedLog is an append-only log file bounded in size. Trimming keeps whole
// lines only.
type cappedLog struct {
	mu   sync.Mutex
	file *os.File
	size int64
	max  int64
	keep int64
}

func openCappedLog(path string, maxBytes, keepBytes int64) (*cappedLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	l := &cappedLog{file: file, size: info.Size(), max: maxBytes, keep: keepBytes}
	if err := l.trim(); err != nil {
		file.Close()
		return nil, err
	}
	return l, nil
}

func (l *cappedLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.file.Write(p)
	l.size += int64(n)
	if err != nil {
		return n, err
	}
	return n, l.trim()
}

func (l *cappedLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func (l *cappedLog) trim() error {
	if l.size <= l.max {
		return nil
	}
	tail := make([]byte, l.keep)
	n, err := l.file.ReadAt(tail, l.size-l.keep)
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read log tail: %w", err)
	}
	tail = tail[:n]
	if i := bytes.IndexByte(tail, '\n'); i >= 0 && i+1 < len(tail) {
		tail = tail[i+1:]
	}

	if err := l.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate log: %w", err)
	}
	// O_APPEND places the write at the new end of file.
	if _, err := l.file.Write(tail); err != nil {
		return fmt.Errorf("rewrite log tail: %w", err)
	}
	l.size = int64(len(tail))
	return nil
}
