package logger

import (
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Release mode writes JSON lines,
// anything else writes human readable console output. Stacktraces are
// only attached from error level upwards.
func New(release bool, level zapcore.Level, version string) (*zap.Logger, func()) {
	return newWithWriter(release, level, version, os.Stdout)
}

func newWithWriter(release bool, level zapcore.Level, version string, w io.Writer) (*zap.Logger, func()) {
	var encCfg zapcore.EncoderConfig
	if release {
		encCfg = zap.NewProductionEncoderConfig()
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.LevelKey = "level"
	encCfg.NameKey = "name"
	encCfg.MessageKey = "msg"
	encCfg.CallerKey = "caller"
	encCfg.StacktraceKey = "stacktrace"

	var encoder zapcore.Encoder
	if release {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("version", version))

	flusher := func() {
		if err := logger.Sync(); err != nil {
			log.Println("error during flushing any buffered log entries:", err)
		}
	}

	return logger, flusher
}
