package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
	DebugLogger *log.Logger

	loggerOnce sync.Once
)

// initLoggers инициализирует файловые логгеры при первом обращении.
// Директория берется из LOG_DIR (по умолчанию logs). Если файл открыть
// не удалось, логгер пишет в stderr, чтобы не ронять процесс.
func initLoggers() {
	loggerOnce.Do(func() {
		logDir := os.Getenv("LOG_DIR")
		if logDir == "" {
			logDir = "logs"
		}

		open := func(name, prefix string) *log.Logger {
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return log.New(os.Stderr, prefix, log.Ldate|log.Ltime|log.Lshortfile)
			}
			f, err := os.OpenFile(filepath.Join(logDir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
			if err != nil {
				return log.New(os.Stderr, prefix, log.Ldate|log.Ltime|log.Lshortfile)
			}
			return log.New(f, prefix, log.Ldate|log.Ltime|log.Lshortfile)
		}

		InfoLogger = open("info.log", "INFO: ")
		ErrorLogger = open("error.log", "ERROR: ")
		DebugLogger = open("debug.log", "DEBUG: ")
	})
}

// LogInfo логирует информационное сообщение
func LogInfo(format string, v ...interface{}) {
	initLoggers()
	_, file, line, _ := runtime.Caller(1)
	InfoLogger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogError логирует сообщение об ошибке
func LogError(format string, v ...interface{}) {
	initLoggers()
	_, file, line, _ := runtime.Caller(1)
	ErrorLogger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogDebug логирует отладочное сообщение
func LogDebug(format string, v ...interface{}) {
	initLoggers()
	_, file, line, _ := runtime.Caller(1)
	DebugLogger.Printf("%s:%d - %s", filepath.Base(file), line, fmt.Sprintf(format, v...))
}

// LogOperation логирует банковскую операцию с длительностью
func LogOperation(operation string, startTime time.Time, err error) {
	duration := time.Since(startTime)
	if err != nil {
		LogError("Operation %s failed after %v: %v", operation, duration, err)
	} else {
		LogInfo("Operation %s completed in %v", operation, duration)
	}
}
