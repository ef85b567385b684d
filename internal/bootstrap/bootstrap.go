package bootstrap

import (
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"
	"go.uber.org/zap"

	hookinadapter "zenstreak/internal/modules/hook/adapter/in"
	hookoutadapter "zenstreak/internal/modules/hook/adapter/out"
	hookservice "zenstreak/internal/modules/hook/service"
	hookusecase "zenstreak/internal/modules/hook/usecase"
	practiceinadapter "zenstreak/internal/modules/practice/adapter/in"
	practiceoutadapter "zenstreak/internal/modules/practice/adapter/out"
	practiceservice "zenstreak/internal/modules/practice/service"
	practiceusecase "zenstreak/internal/modules/practice/usecase"
	prefinadapter "zenstreak/internal/modules/preferences/adapter/in"
	prefoutadapter "zenstreak/internal/modules/preferences/adapter/out"
	prefservice "zenstreak/internal/modules/preferences/service"
	prefusecase "zenstreak/internal/modules/preferences/usecase"
	streakinadapter "zenstreak/internal/modules/streak/adapter/in"
	streakoutadapter "zenstreak/internal/modules/streak/adapter/out"
	"zenstreak/internal/modules/streak/domain"
	streakout "zenstreak/internal/modules/streak/port/out"
	streakservice "zenstreak/internal/modules/streak/service"
	streakusecase "zenstreak/internal/modules/streak/usecase"
	"zenstreak/internal/platform/clock"
	"zenstreak/internal/platform/config"
	"zenstreak/internal/platform/id"
	"zenstreak/internal/platform/kv"
	"zenstreak/internal/platform/logging"
	uiapp "zenstreak/internal/ui/app"
)

type App struct {
	Config      config.Config
	Logger      *zap.Logger
	StreakCLI   streakinadapter.CLIHandler
	PracticeCLI practiceinadapter.CLIHandler
	PrefsCLI    prefinadapter.CLIHandler
	HookCLI     hookinadapter.CLIHandler

	// WatchPath is the file whose changes mean another process wrote state.
	// Empty for in-memory storage.
	WatchPath string

	closers []func() error
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	store, watchPath, closeStore, err := openStore(cfg)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return Wire(cfg, store, clock.SystemClock{Location: cfg.Location}, logger, watchPath, closeStore), nil
}

// Wire assembles the modules over an already opened store. Tests use it with
// a memory store and a fixed clock.
func Wire(cfg config.Config, store kv.Store, clk clock.Clock, logger *zap.Logger, watchPath string, closers ...func() error) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	hookLog := hclog.New(&hclog.LoggerOptions{
		Name:       "hook",
		Level:      hclog.Warn,
		Output:     zap.NewStdLog(logger.Named("hook.host")).Writer(),
		JSONFormat: true,
	})
	hookUC := hookusecase.NewInteractor(
		hookservice.NewHookService(
			hookoutadapter.NewFileManifestStore(cfg.HooksDir()),
			hookoutadapter.NewGRPCHost(hookLog),
			logger.Named("hook"),
		),
		cfg.Hooks,
	)

	var journal streakout.Journal
	if cfg.Journal && cfg.Persistent() {
		journal = streakoutadapter.NewVaultJournal(cfg.JournalDir())
	}
	streakSvc := streakservice.NewStreakService(
		clk,
		streakoutadapter.NewKVRecordStore(store),
		streakoutadapter.NewKVMilestoneStore(store),
		logger.Named("streak"),
	)
	streakUC := streakusecase.NewInteractor(
		streakSvc,
		journal,
		hookUC,
		id.UUID{},
		streakusecase.Defaults{Type: cfg.DefaultType, Minutes: cfg.DefaultDuration},
		logger.Named("streak"),
	)

	practiceUC := practiceusecase.NewInteractor(
		practiceservice.NewPracticeService(practiceoutadapter.NewYAMLCatalog(filepath.Join(cfg.Home, "catalog.yaml"))),
		clk,
	)
	prefUC := prefusecase.NewInteractor(prefservice.NewPreferencesService(prefoutadapter.NewKVStore(store), logger.Named("preferences")))

	app := &App{
		Config:      cfg,
		Logger:      logger,
		StreakCLI:   streakinadapter.NewCLIHandler(streakUC),
		PracticeCLI: practiceinadapter.NewCLIHandler(practiceUC),
		PrefsCLI:    prefinadapter.NewCLIHandler(prefUC),
		HookCLI:     hookinadapter.NewCLIHandler(hookUC),
		WatchPath:   watchPath,
	}
	for _, c := range closers {
		if c != nil {
			app.closers = append(app.closers, c)
		}
	}
	return app
}

func openStore(cfg config.Config) (kv.Store, string, func() error, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemoryStore(), "", nil, nil
	case config.StorageSQLite:
		store, err := kv.NewSQLiteStore(cfg.DBPath())
		if err != nil {
			return nil, "", nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, cfg.DBPath(), store.Close, nil
	default:
		store := kv.NewFileStore(cfg.DataDir())
		return store, store.Path(domain.RecordKey), nil, nil
	}
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(uiapp.Deps{
		Streak:    app.StreakCLI,
		Practice:  app.PracticeCLI,
		Prefs:     app.PrefsCLI,
		WatchPath: app.WatchPath,
		Logger:    app.Logger.Named("tui"),
	})
	defer func() {
		if err := model.Close(); err != nil {
			app.Logger.Warn("stop store watcher", zap.Error(err))
		}
	}()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
