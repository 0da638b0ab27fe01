package logger

import (
	"io"
	"os"
	"path/filepath"

	"dormhub/pkg/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger *logrus.Logger

// Initialize 按服务端配置初始化日志：可选文件轮转，同时输出到控制台
func Initialize(cfg *config.Config) error {
	l, err := New(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// New 创建日志实例，console 为空时只写文件
func New(cfg config.LogConfig, console io.Writer) (*logrus.Logger, error) {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(formatter(cfg.Format))

	writers := []io.Writer{}
	if console != nil {
		writers = append(writers, console)
	}
	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return nil, err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}

	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}
	return l, nil
}

// UseCLI 命令行客户端日志：文本格式写到 stderr，默认只显示警告
func UseCLI(out io.Writer, verbose bool) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	l, _ := New(config.LogConfig{Level: level, Format: "text"}, out)
	Logger = l
}

func formatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{FullTimestamp: true}
}

// GetLogger 获取日志实例，未初始化时返回默认实例
func GetLogger() *logrus.Logger {
	if Logger == nil {
		Logger = logrus.New()
	}
	return Logger
}
