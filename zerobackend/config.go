package zerobackend

import (
	"path/filepath"
	"strings"
	"sync"

	smerrors "github.com/Station-Manager/errors"
	"github.com/Station-Manager/kvlog"
	"github.com/Station-Manager/types"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var validateOnce sync.Once

// validateConfig checks the logging configuration before the logger is
// built. The configured level must be a recognized name (or "off"); the
// per-call gate still fails safe, but a misconfigured backend should fail
// loud at startup.
func validateConfig(cfg *types.LoggingConfig) error {
	const op smerrors.Op = "zerobackend.validateConfig"
	if cfg == nil {
		return smerrors.New(op).Msg(errMsgNilConfig)
	}

	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	// The level name check runs first so a bad level fails with a pointed
	// message instead of a generic struct-validation error. The backend
	// needs a concrete severity: "off" is not an accepted configured level
	// (disable output by not installing the backend).
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(cfg.Level)), ":")
	if kvlog.ParseLevel(name) >= kvlog.LevelOff {
		return smerrors.New(op).Msg(errMsgUnknownLevel + ": " + cfg.Level)
	}

	if err := validate.Struct(cfg); err != nil {
		return smerrors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	if filepath.IsAbs(cfg.RelLogFileDir) {
		return smerrors.New(op).Msg("RelLogFileDir must be relative to the working directory")
	}

	return nil
}
