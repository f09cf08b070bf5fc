package host

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/reglet-dev/reaper-bridge/application/batch"
	"github.com/reglet-dev/reaper-bridge/application/config"
	"github.com/reglet-dev/reaper-bridge/capability"
	"github.com/reglet-dev/reaper-bridge/domain/entities"
	"github.com/reglet-dev/reaper-bridge/domain/errors"
	"github.com/reglet-dev/reaper-bridge/domain/ports"
	"github.com/reglet-dev/reaper-bridge/hostfuncs"
	"github.com/reglet-dev/reaper-bridge/infrastructure/extstore"
	"github.com/reglet-dev/reaper-bridge/infrastructure/metrics"
	"github.com/reglet-dev/reaper-bridge/infrastructure/native"
	bridgelog "github.com/reglet-dev/reaper-bridge/log"
)

// Extension is a loaded extension and everything it uses to reach the host.
type Extension struct {
	Info    entities.PluginInfo
	Config  *config.Config
	Logger  *zap.Logger
	Level   zap.AtomicLevel
	Table   *capability.Table
	Caller  *hostfuncs.Caller
	API     *hostfuncs.API
	Batch   *batch.Engine
	State   ports.StateStore
	Metrics *metrics.Metrics

	cancel  context.CancelFunc
	closers []func() error
}

// Load builds an Extension from the host's plugin info record.
func Load(info *entities.PluginInfo, opts ...Option) (*Extension, error) {
	if info == nil {
		return nil, &errors.InvalidInputError{Op: "load", Field: "plugin info", Reason: "nil"}
	}
	if info.GetFunc.IsNil() {
		return nil, &errors.InvalidInputError{Op: "load", Field: "GetFunc", Reason: "nil entry point"}
	}

	lc := defaultLoadConfig()
	for _, opt := range opts {
		opt(&lc)
	}

	cfg := lc.cfg
	watch := lc.watch && cfg == nil
	if cfg == nil {
		var err error
		if cfg, err = config.Load(lc.configPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	ext := &Extension{Info: *info, Config: cfg}

	console := &consoleProxy{}
	if err := ext.buildLogger(lc, console); err != nil {
		return nil, err
	}

	var mws []hostfuncs.Middleware
	var tableOpts []capability.TableOption
	var batchOpts []batch.Option
	if cfg.Metrics.Enabled {
		ext.Metrics = metrics.NewMetrics(lc.registry)
		mws = append(mws, hostfuncs.MetricsMiddleware(ext.Metrics))
		tableOpts = append(tableOpts, capability.WithObserver(ext.Metrics))
		batchOpts = append(batchOpts, batch.WithObserver(ext.Metrics))
	}
	mws = append(mws, hostfuncs.LoggingMiddleware(ext.Logger))

	binder := lc.binder
	if binder == nil {
		binder = native.NewBinder()
	}

	tableOpts = append(tableOpts, capability.WithTableLogger(ext.Logger))
	ext.Table = lc.table
	if ext.Table == nil {
		ext.Table = capability.NewTable(
			capability.NewResolver(binder, capability.WithLogger(ext.Logger)),
			tableOpts...,
		)
	} else {
		ext.Table.Configure(tableOpts...)
		ext.Table.Resolver().SetLogger(ext.Logger)
	}
	if !ext.Table.SetBootstrap(info.GetFunc) && !ext.Table.Bootstrapped() {
		ext.close()
		return nil, errors.ErrNotBootstrapped
	}

	ext.Caller = hostfuncs.NewCaller(binder,
		hostfuncs.WithLogger(ext.Logger),
		hostfuncs.WithMiddleware(mws...),
	)
	ext.API = hostfuncs.NewAPI(ext.Table, ext.Caller)
	console.api.Store(ext.API)

	batchOpts = append(batchOpts,
		batch.WithLogger(ext.Logger),
		batch.WithMaxParameters(cfg.Batch.MaxParameters),
		batch.WithTextCapacity(cfg.Batch.TextCapacity),
	)
	ext.Batch = batch.NewEngine(ext.Caller, ext.Table, batchOpts...)
	ext.State = extstore.NewStore(ext.API, extstore.WithSection(cfg.State.Section))

	var ops []string
	for _, name := range ext.Caller.Catalog().Names() {
		if name != hostfuncs.OpGetFunc {
			ops = append(ops, name)
		}
	}
	if missing := ext.Table.Preload(ops...); len(missing) > 0 {
		ext.Logger.Warn("extension loaded with missing host operations", zap.Int("missing", len(missing)))
	}

	if watch {
		ext.watchConfig(lc.configPath)
	}

	ext.Logger.Info("extension loaded",
		zap.Int32("caller_version", info.CallerVersion),
		zap.Int("operations", ext.Table.Len()),
	)
	return ext, nil
}

func (e *Extension) buildLogger(lc loadConfig, console *consoleProxy) error {
	if lc.logger != nil {
		e.Logger = lc.logger
		e.Level = zap.NewAtomicLevel()
		return nil
	}
	logger, level, closeFn, err := bridgelog.New(bridgelog.Settings{
		Enabled: e.Config.Log.Enabled,
		Level:   e.Config.Log.Level,
		Path:    e.Config.Log.Path,
		Console: e.Config.Log.Console,
	}, bridgelog.WithConsole(console))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	e.Logger, e.Level = logger, level
	e.closers = append(e.closers, closeFn)
	return nil
}

// watchConfig keeps the log level in sync with the configuration file.
// The watcher runs on its own goroutine, so it logs through a Background
// logger that never prints to the host console.
func (e *Extension) watchConfig(path string) {
	log := bridgelog.Background(e.Logger)
	ctx, cancel := context.WithCancel(context.Background())
	err := config.Watch(ctx, path, log, func(cfg *config.Config, err error) {
		if err != nil {
			log.Warn("ignoring invalid config change", zap.Error(err))
			return
		}
		lvl, err := bridgelog.ParseLevel(cfg.Log.Level)
		if err != nil {
			return
		}
		if lvl != e.Level.Level() {
			e.Level.SetLevel(lvl)
			log.Info("log level changed", zap.Stringer("level", lvl))
		}
	})
	if err != nil {
		cancel()
		log.Debug("config watch disabled", zap.Error(err))
		return
	}
	e.cancel = cancel
}

// Close stops the config watcher and closes the log. The bootstrap stays
// set: the host does not hand it out again within one process.
func (e *Extension) Close() error {
	if e == nil {
		return nil
	}
	e.Logger.Info("extension unloading")
	return e.close()
}

func (e *Extension) close() error {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	var err error
	for i := len(e.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, e.closers[i]())
	}
	e.closers = nil
	return err
}
