package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type logger struct {
	config *Config
	writer io.Writer
	subs   map[string]*SubLogger
	zl     zerolog.Logger
}

// SubLogger logs with a fixed "_sub" field and its own level.
type SubLogger struct {
	zl   zerolog.Logger
	name string
}

var (
	globalMu   sync.RWMutex
	globalInst *logger
)

// InitGlobalLogger replaces the process wide logger. Calling any log function before
// InitGlobalLogger falls back to a console logger at info level.
func InitGlobalLogger(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	writers := make([]io.Writer, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		switch target {
		case "console":
			writers = append(writers, zerolog.ConsoleWriter{
				Out:        os.Stderr,
				NoColor:    !cfg.Colorful,
				TimeFormat: "15:04:05",
			})
		case "file":
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.Filename,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.RotateAfterDays,
				Compress:   cfg.Compress,
			})
		}
	}
	if len(writers) == 0 {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !cfg.Colorful})
	}

	inst := newLogger(cfg, zerolog.MultiLevelWriter(writers...))

	globalMu.Lock()
	globalInst = inst
	globalMu.Unlock()
}

func newLogger(cfg *Config, w io.Writer) *logger {
	level := parseLevel(cfg.Levels["default"], zerolog.InfoLevel)

	return &logger{
		config: cfg,
		writer: w,
		subs:   make(map[string]*SubLogger),
		zl:     zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

func parseLevel(s string, fallback zerolog.Level) zerolog.Level {
	if s == "" {
		return fallback
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return fallback
	}

	return lvl
}

func instance() *logger {
	globalMu.RLock()
	inst := globalInst
	globalMu.RUnlock()
	if inst != nil {
		return inst
	}

	InitGlobalLogger(DefaultConfig())

	globalMu.RLock()
	defer globalMu.RUnlock()

	return globalInst
}

// NewSubLogger returns a named logger whose level comes from Config.Levels[name].
func NewSubLogger(name string) *SubLogger {
	inst := instance()

	globalMu.Lock()
	defer globalMu.Unlock()

	if sub, ok := inst.subs[name]; ok {
		return sub
	}

	level := parseLevel(inst.config.Levels[name], inst.zl.GetLevel())
	sub := &SubLogger{
		zl:   zerolog.New(inst.writer).Level(level).With().Timestamp().Str("_sub", name).Logger(),
		name: name,
	}
	inst.subs[name] = sub

	return sub
}

func addFields(e *zerolog.Event, keyvals ...any) *zerolog.Event {
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "!MISSING-VALUE!")
	}

	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = "!INVALID-KEY!"
		}

		switch v := keyvals[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case []byte:
			e = e.Int(key+"_len", len(v))
		default:
			e = e.Interface(key, v)
		}
	}

	return e
}

func (s *SubLogger) Debug(msg string, keyvals ...any) {
	addFields(s.zl.Debug(), keyvals...).Msg(msg)
}

func (s *SubLogger) Info(msg string, keyvals ...any) {
	addFields(s.zl.Info(), keyvals...).Msg(msg)
}

func (s *SubLogger) Warn(msg string, keyvals ...any) {
	addFields(s.zl.Warn(), keyvals...).Msg(msg)
}

func (s *SubLogger) Error(msg string, keyvals ...any) {
	addFields(s.zl.Error(), keyvals...).Msg(msg)
}

func Debug(msg string, keyvals ...any) {
	addFields(instance().zl.Debug(), keyvals...).Msg(msg)
}

func Info(msg string, keyvals ...any) {
	addFields(instance().zl.Info(), keyvals...).Msg(msg)
}

func Warn(msg string, keyvals ...any) {
	addFields(instance().zl.Warn(), keyvals...).Msg(msg)
}

func Error(msg string, keyvals ...any) {
	addFields(instance().zl.Error(), keyvals...).Msg(msg)
}
