package logger

import (
	"log"
	"os"
	"strings"
)

// Logger interface for structured logging
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
}

// SimpleLogger implements Logger with basic Go logging. Debug output is
// gated on LOG_DEBUG so production logs stay quiet.
type SimpleLogger struct {
	infoLogger  *log.Logger
	errorLogger *log.Logger
	warnLogger  *log.Logger
	debugLogger *log.Logger
	debugOn     bool
}

// New creates a logger whose lines are prefixed with the given component,
// e.g. "server" or "bot".
func New(component string) Logger {
	prefix := ""
	if component != "" {
		prefix = "[" + component + "] "
	}
	return &SimpleLogger{
		infoLogger:  log.New(os.Stdout, "INFO: "+prefix, log.Ldate|log.Ltime),
		errorLogger: log.New(os.Stderr, "ERROR: "+prefix, log.Ldate|log.Ltime),
		warnLogger:  log.New(os.Stdout, "WARN: "+prefix, log.Ldate|log.Ltime),
		debugLogger: log.New(os.Stdout, "DEBUG: "+prefix, log.Ldate|log.Ltime|log.Lshortfile),
		debugOn:     strings.EqualFold(os.Getenv("LOG_DEBUG"), "true"),
	}
}

// Info logs an info message
func (l *SimpleLogger) Info(msg string, fields ...interface{}) {
	if len(fields) > 0 {
		l.infoLogger.Printf("%s %v", msg, fields)
	} else {
		l.infoLogger.Print(msg)
	}
}

// Error logs an error message
func (l *SimpleLogger) Error(msg string, err error, fields ...interface{}) {
	if len(fields) > 0 {
		l.errorLogger.Printf("%s: %v %v", msg, err, fields)
	} else {
		l.errorLogger.Printf("%s: %v", msg, err)
	}
}

// Warn logs a warning message
func (l *SimpleLogger) Warn(msg string, fields ...interface{}) {
	if len(fields) > 0 {
		l.warnLogger.Printf("%s %v", msg, fields)
	} else {
		l.warnLogger.Print(msg)
	}
}

// Debug logs a debug message when LOG_DEBUG=true
func (l *SimpleLogger) Debug(msg string, fields ...interface{}) {
	if !l.debugOn {
		return
	}
	if len(fields) > 0 {
		l.debugLogger.Printf("%s %v", msg, fields)
	} else {
		l.debugLogger.Print(msg)
	}
}

// Fatal logs a fatal error and exits
func (l *SimpleLogger) Fatal(msg string, err error, fields ...interface{}) {
	if len(fields) > 0 {
		l.errorLogger.Fatalf("%s: %v %v", msg, err, fields)
	} else {
		l.errorLogger.Fatalf("%s: %v", msg, err)
	}
}
