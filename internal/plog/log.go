// Package plog configures the process-wide diagnostic logger used by the
// generator and by cmd/protoc-gen-protox. stdout is reserved for the
// CodeGeneratorResponse, so every log record goes to stderr.
package plog

import (
	"os"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("protox")

func init() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatter := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{level:.4s} %{shortfunc}: %{message}`,
	)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level(), "protox")
	logging.SetBackend(leveled)
}

func level() logging.Level {
	switch os.Getenv("PROTOX_LOG") {
	case "debug":
		return logging.DEBUG
	case "info":
		return logging.INFO
	case "warning", "warn":
		return logging.WARNING
	case "error":
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func Debugf(format string, args ...interface{})   { log.Debugf(format, args...) }
func Infof(format string, args ...interface{})    { log.Infof(format, args...) }
func Warningf(format string, args ...interface{}) { log.Warningf(format, args...) }
func Errorf(format string, args ...interface{})   { log.Errorf(format, args...) }
