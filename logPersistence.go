package memobench

import (
	"context"
	"fmt"
	"log"
	"os"
)

// CreateCustomLogTarget redirects logger to the file at logFilePath and
// restores standard output once ctx is canceled, closing the file.
//
// If logFilePath is empty the logger remains unchanged and (nil, nil) is
// returned.
func CreateCustomLogTarget(ctx context.Context, logger *log.Logger, name string, logFilePath string) (*os.File, error) {
	logFile, err := openLogFile(logFilePath, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize log file: %w", err)
	}
	if logFile == nil {
		return nil, nil
	}

	go func(logger *log.Logger) {
		<-ctx.Done()
		logger.SetOutput(os.Stdout)
		if cerr := logFile.Close(); cerr != nil {
			logger.Printf("%s: error closing log file: %v", name, cerr)
		}
		logger.Printf("%s: log file closed", name)
	}(logger)

	logger.Printf("%s: log file opened", name)
	return logFile, nil
}

// openLogFile validates the provided path and opens the target log file in
// append mode. The logger's output is redirected to it.
func openLogFile(logFilePath string, logger *log.Logger) (*os.File, error) {
	path, err := ValidateOutputPath(logFilePath)
	if err != nil {
		return nil, fmt.Errorf("validate log path: %w", err)
	}
	if len(path) == 0 {
		return nil, nil
	}

	const filePermissions = 0o600
	logFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", path, err)
	}

	logger.SetOutput(logFile)
	return logFile, nil
}
