package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// SetupLogging sends the standard logger, and through it the default slog
// logger, to logFile and/or stderr. Without either everything is discarded.
// The returned func closes the log file.
func SetupLogging(logFile string, toStderr bool) (func(), error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var writers []io.Writer
	if toStderr {
		writers = append(writers, os.Stderr)
	}

	closer := func() {}
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), os.ModePerm); err != nil {
			return nil, fmt.Errorf("error creating directory for log file: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		writers = append(writers, f)
		closer = func() { f.Close() }
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(io.MultiWriter(writers...))
	}

	return closer, nil
}
