package utils

import (
    "os"
    "path/filepath"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

var (
    // Logger is the global structured logger.
    Logger *zap.Logger
    // Sugar is the sugared variant for convenience.
    Sugar *zap.SugaredLogger
)

// InitLogger builds a zap logger writing JSON to stdout and, when path is
// non-empty, to a size-rotated file as well.
func InitLogger(path, level string) {
    encCfg := zap.NewProductionEncoderConfig()
    encCfg.TimeKey = "ts"
    encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

    lvl := parseLevel(level)
    cores := []zapcore.Core{
        zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(os.Stdout), lvl),
    }

    if path != "" {
        _ = os.MkdirAll(filepath.Dir(path), 0o755)
        lj := &lumberjack.Logger{
            Filename:   path,
            MaxSize:    100, // megabytes
            MaxBackups: 3,
            MaxAge:     7, // days
        }
        cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(lj), lvl))
    }

    Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
    Sugar = Logger.Sugar()
}

func parseLevel(s string) zapcore.Level {
    switch s {
    case "debug":
        return zapcore.DebugLevel
    case "warn":
        return zapcore.WarnLevel
    case "error":
        return zapcore.ErrorLevel
    default:
        return zapcore.InfoLevel
    }
}
