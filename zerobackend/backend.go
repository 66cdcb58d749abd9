package zerobackend

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Station-Manager/config"
	smerrors "github.com/Station-Manager/errors"
	"github.com/Station-Manager/kvlog"
	"github.com/Station-Manager/types"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultShutdownTimeout = 5 * time.Second

// Service is a zerolog-backed kvlog.Backend with safe lifecycle management.
// LoggingConfig may be set directly; when nil it is pulled from the injected
// application config service at Initialize.
type Service struct {
	WorkingDir    string          `di.inject:"WorkingDir"`
	ConfigService *config.Service `di.inject:"config"`
	LoggingConfig *types.LoggingConfig

	logger        atomic.Pointer[zerolog.Logger]
	isInitialized atomic.Bool
	fileWriter    *lumberjack.Logger

	// mu guards lifecycle transitions against in-flight emits; wg and
	// activeOps track emits so Close can wait for them (bounded).
	mu        sync.RWMutex
	wg        sync.WaitGroup
	activeOps atomic.Int64

	handleMu sync.RWMutex
	handles  map[string]*Handle
}

func New() *Service {
	return &Service{}
}

// Initialize validates the configuration and builds the underlying zerolog
// logger. It's safe to call Initialize multiple times.
func (s *Service) Initialize() error {
	const op smerrors.Op = "zerobackend.Initialize"
	if s == nil {
		return smerrors.New(op).Msg(errMsgNilService)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isInitialized.Load() {
		return nil
	}

	if s.LoggingConfig == nil {
		if s.ConfigService == nil {
			return smerrors.New(op).Msg(errMsgAppCfgNotSet)
		}
		cfg, err := s.ConfigService.LoggingConfig()
		if err != nil {
			return smerrors.New(op).Err(err).Msg("failed to read logging config")
		}
		s.LoggingConfig = &cfg
	}
	if err := validateConfig(s.LoggingConfig); err != nil {
		return err
	}

	dir := filepath.Join(s.WorkingDir, s.LoggingConfig.RelLogFileDir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return smerrors.New(op).Err(err).Msg("failed to create logs directory")
	}

	writers, err := s.initializeWriters()
	if err != nil {
		return err
	}
	if len(writers) == 0 {
		return smerrors.New(op).Msg(errMsgNoChannels)
	}

	logger := zerolog.New(multiWriter(writers)).
		Level(zerologLevel(kvlog.ParseLevel(s.LoggingConfig.Level)))
	if s.LoggingConfig.WithTimestamp {
		logger = logger.With().Timestamp().Logger()
	}

	s.logger.Store(&logger)
	s.handles = make(map[string]*Handle)
	s.isInitialized.Store(true)
	return nil
}

// Close waits for in-flight log operations (bounded by ShutdownTimeoutMS)
// and releases the file writer. It's safe to call Close multiple times.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	if !s.isInitialized.Load() {
		s.mu.Unlock()
		return nil
	}
	// Flip first: every emit checks the flag under the read lock, so no new
	// wg.Add can start once this store is visible.
	s.isInitialized.Store(false)
	s.mu.Unlock()

	timeout := defaultShutdownTimeout
	warn := false
	if s.LoggingConfig != nil {
		if s.LoggingConfig.ShutdownTimeoutMS > 0 {
			timeout = time.Duration(s.LoggingConfig.ShutdownTimeoutMS) * time.Millisecond
		}
		warn = s.LoggingConfig.ShutdownTimeoutWarning
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		if warn {
			if logger := s.logger.Load(); logger != nil {
				logger.Warn().
					Int64("active_operations", s.activeOps.Load()).
					Msg("Logger shutdown timeout exceeded")
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Store(nil)
	if s.fileWriter != nil {
		_ = s.fileWriter.Close()
		s.fileWriter = nil
	}
	return nil
}

// GetLogger returns the cached handle for module. The module identifier
// becomes the handle's "logger" field so zerolog-side filtering and routing
// by namespace applies; it is never embedded in the record payload.
func (s *Service) GetLogger(module string) kvlog.LoggerHandle {
	if s == nil {
		return (*Handle)(nil)
	}

	s.handleMu.RLock()
	h, ok := s.handles[module]
	s.handleMu.RUnlock()
	if ok {
		return h
	}

	s.handleMu.Lock()
	defer s.handleMu.Unlock()
	if s.handles == nil {
		s.handles = make(map[string]*Handle)
	}
	if h, ok = s.handles[module]; ok {
		return h
	}
	h = &Handle{service: s, module: module}
	s.handles[module] = h
	return h
}

// Handle is the per-module kvlog.LoggerHandle.
type Handle struct {
	service *Service
	module  string
}

// Enabled reports whether level passes the configured zerolog level. An
// uninitialized or closed service disables everything.
func (h *Handle) Enabled(level kvlog.Level) bool {
	if h == nil || h.service == nil || !h.service.isInitialized.Load() {
		return false
	}
	zl := zerologLevel(level)
	if zl == zerolog.Disabled {
		return false
	}
	logger := h.service.logger.Load()
	return logger != nil && logger.GetLevel() <= zl
}

func (h *Handle) Log(level kvlog.Level, record map[string]any) {
	h.log(level, record, nil)
}

func (h *Handle) LogErr(level kvlog.Level, record map[string]any, err error) {
	h.log(level, record, err)
}

// log builds the zerolog event under the read lock so Close cannot tear the
// logger down mid-build, then writes outside the lock with the WaitGroup
// held so Close can wait for the write.
func (h *Handle) log(level kvlog.Level, record map[string]any, err error) {
	if h == nil || h.service == nil {
		return
	}
	s := h.service
	zl := zerologLevel(level)
	if zl == zerolog.Disabled {
		return
	}

	s.mu.RLock()
	if !s.isInitialized.Load() {
		s.mu.RUnlock()
		return
	}
	logger := s.logger.Load()
	if logger == nil || logger.GetLevel() > zl {
		s.mu.RUnlock()
		return
	}

	s.activeOps.Add(1)
	s.wg.Add(1)

	ev := logger.WithLevel(zl).Str(loggerField, h.module).Fields(record)
	if err != nil {
		ev = ev.Err(err)
		if chain := newErrChain(err); len(chain.messages) > 0 {
			ev = ev.Strs("error_chain", chain.messages).
				Str("error_root", chain.root()).
				Str("error_history", chain.joined()).
				Strs("error_ops", chain.ops)
			if rootOp := chain.rootOp(); rootOp != "" {
				ev = ev.Str("error_root_op", rootOp)
			}
		}
	}
	s.mu.RUnlock()

	defer func() {
		s.activeOps.Add(-1)
		s.wg.Done()
	}()
	ev.Send()
}

func zerologLevel(l kvlog.Level) zerolog.Level {
	switch l {
	case kvlog.LevelTrace:
		return zerolog.TraceLevel
	case kvlog.LevelDebug:
		return zerolog.DebugLevel
	case kvlog.LevelInfo:
		return zerolog.InfoLevel
	case kvlog.LevelWarn:
		return zerolog.WarnLevel
	case kvlog.LevelError:
		return zerolog.ErrorLevel
	case kvlog.LevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.Disabled
	}
}
