package logging

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// DefaultTimeFormatStr is the time format used by the console appenders.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. This is a subset of the
// zapcore.Core interface.
type Appender interface {
	// Write submits a structured log entry to the appender for logging.
	Write(zapcore.Entry, []zapcore.Field) error
	// Sync is for signaling that any buffered logs to `Write` should be flushed.
	Sync() error
}

// ConsoleAppender will dump log lines to stdout or stderr.
type ConsoleAppender struct {
	io zapcore.WriteSyncer
}

// NewStdoutAppender creates a new appender that prints to stdout.
func NewStdoutAppender() ConsoleAppender {
	return ConsoleAppender{zapcore.Lock(os.Stdout)}
}

// NewWriterAppender creates a new appender that prints to the given writer.
func NewWriterAppender(writer zapcore.WriteSyncer) ConsoleAppender {
	return ConsoleAppender{writer}
}

// Write outputs the entry to the underlying stream.
func (appender ConsoleAppender) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	const maxLength = 10
	toPrint := make([]string, 0, maxLength)
	toPrint = append(toPrint, entry.Time.Format(DefaultTimeFormatStr))
	toPrint = append(toPrint, strings.ToUpper(entry.Level.String()))
	if entry.LoggerName != "" {
		toPrint = append(toPrint, entry.LoggerName)
	}
	if entry.Caller.Defined {
		toPrint = append(toPrint, callerToString(&entry.Caller))
	}
	toPrint = append(toPrint, entry.Message)

	if len(fields) == 0 {
		_, err := appender.io.Write([]byte(strings.Join(toPrint, "\t") + "\n"))
		return err
	}

	// Use zap's json encoder which encodes the slice of fields in-order, as
	// opposed to the random iteration order of a map.
	jsonEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{SkipLineEnding: true})
	buf, err := jsonEncoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return err
	}
	toPrint = append(toPrint, string(buf.Bytes()))
	_, err = appender.io.Write([]byte(strings.Join(toPrint, "\t") + "\n"))
	return err
}

// Sync flushes the underlying stream.
func (appender ConsoleAppender) Sync() error {
	return appender.io.Sync()
}

// Return example: "logging/impl_test.go:36".
func callerToString(caller *zapcore.EntryCaller) string {
	// The file returned by `runtime.Caller` is a full path and always contains
	// forward slashes. Keep the last two path elements.
	shortPath := caller.File
	if idx := strings.LastIndexByte(shortPath, '/'); idx >= 0 {
		if idx := strings.LastIndexByte(shortPath[:idx], '/'); idx >= 0 {
			shortPath = shortPath[idx+1:]
		}
	}
	return shortPath + ":" + strconv.Itoa(caller.Line)
}
