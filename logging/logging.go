package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultDir = "logs"
	FileName   = "gridsnake.log"
	// Files larger than this are rotated on startup
	MaxSize = 10 * 1024 * 1024
)

// Setup routes the standard logger. With debug off everything is discarded,
// since the window or the terminal owns the screen. With debug on, logs go
// to dir/gridsnake.log and the returned file must be closed by the caller.
func Setup(dir string, debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxSize {
		rotated := filepath.Join(dir, fmt.Sprintf("gridsnake-%s.log", time.Now().Format("20060102-150405")))
		// A failed rename keeps appending to the old file
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("logging started, pid %d", os.Getpid())
	return f
}
