package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/quillfort/trak/internal/logging"
	"github.com/quillfort/trak/internal/paths"
	"github.com/quillfort/trak/internal/sqlite"
	"github.com/quillfort/trak/pkg/types"
)

// programEnv bundles what an interactive program needs: resolved
// directories, the log file, and optionally an attached backend.
type programEnv struct {
	configDir string
	dataDir   string
	log       *slog.Logger
	backend   *sqlite.Backend

	logFile io.Closer
}

// openEnv resolves directories from flags, config, and environment, opens
// the log file, and attaches the SQLite backend when withBackend is set.
func openEnv(withBackend bool) (*programEnv, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	log, logFile, err := logging.Open(dataDir)
	if err != nil {
		return nil, err
	}

	env := &programEnv{
		configDir: configDir,
		dataDir:   dataDir,
		log:       log,
		logFile:   logFile,
	}
	if !withBackend {
		return env, nil
	}

	backend := sqlite.NewBackend()
	storeCfg := types.Config{
		Backend: cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}
	if err := backend.Attach(storeCfg); err != nil {
		env.close()
		return nil, fmt.Errorf("attach storage: %w", err)
	}
	env.backend = backend
	return env, nil
}

// close detaches the backend and releases the log file. The first error
// wins.
func (env *programEnv) close() error {
	var firstErr error
	if env.backend != nil {
		if err := env.backend.Detach(); err != nil {
			firstErr = err
		}
		env.backend = nil
	}
	if env.logFile != nil {
		if err := env.logFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		env.logFile = nil
	}
	return firstErr
}
