package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"pathoscope/internal/annotate"
	"pathoscope/internal/bridge"
	"pathoscope/internal/config"
	"pathoscope/internal/controllers"
	"pathoscope/internal/inference"
	"pathoscope/internal/logger"
	"pathoscope/internal/models"
	"pathoscope/internal/services"
	"pathoscope/internal/shutdown"
	"pathoscope/internal/views"
)

const (
	AppName    = "Pathoscope"
	AppID      = "org.pathoscope.desktop"
	AppVersion = "1.0.0"
)

// Application holds the wired components of the desktop client
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  *config.Config

	controller *controllers.MainController
	view       *views.MainView
	windows    *bridge.FyneWindows
	shutdown   *shutdown.Manager
}

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	appLogger, closeLog, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}

	application := NewApplication(cfg, appLogger)
	application.shutdown.Register("log", shutdown.Func(func() {
		if err := closeLog(); err != nil {
			log.Printf("closing log file: %v", err)
		}
	}))
	application.shutdown.Listen(func() {
		fyne.Do(application.fyneApp.Quit)
	})

	application.Run()
}

// newLogger writes JSON to the configured log file, or to a console writer
// when no file is set.
func newLogger(cfg *config.Config) (logger.Logger, func() error, error) {
	level := logger.DetermineLevel(cfg.Log.Level)
	if cfg.Log.File == "" {
		return logger.NewConsoleLogger(level), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	var writer io.Writer = file
	if level <= zerolog.DebugLevel {
		writer = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.NewZerolog(writer, level), file.Close, nil
}

// NewApplication creates and wires the application using dependency injection
func NewApplication(cfg *config.Config, appLogger logger.Logger) *Application {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":       AppVersion,
		"go_version":    runtime.Version(),
		"inference_url": cfg.Inference.BaseURL,
		"log_level":     cfg.Log.Level,
	})

	windows := bridge.NewFyneWindows()
	windows.Watch(fyneApp.Lifecycle())
	windows.Track(window)

	host := bridge.NewHost(windows, bridge.NewPDFRenderer(AppName), appLogger)
	client := inference.NewClient(cfg.Inference.BaseURL, cfg.Inference.Timeout, appLogger)

	state := models.NewAppState(controllers.SaveDirFromPreferences(fyneApp.Preferences(), cfg.Reports.SaveDir))
	form := models.NewReportForm()

	mainView := views.NewMainView(window, form)

	analysis := services.NewAnalysisService(client, annotate.NewAnnotator(), state, appLogger)
	composer := services.NewReportComposer(form, state, host, mainView, services.SystemClock{}, appLogger)

	controller := controllers.NewMainController(analysis, composer, state, fyneApp.Preferences(), appLogger)
	controller.SetMainView(mainView)

	manager := shutdown.NewManager(appLogger)
	manager.Register("controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		config:     cfg,
		controller: controller,
		view:       mainView,
		windows:    windows,
		shutdown:   manager,
	}
	application.setupWindowEvents()

	return application
}

// Run shows the main window and blocks until the app quits
func (a *Application) Run() {
	a.view.Show()
	a.fyneApp.Run()
	a.shutdown.Shutdown()
	a.logger.Info("Application", "terminated", nil)
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.view.ShowConfirm("Exit Application", "Are you sure you want to exit?", func(confirmed bool) {
			if confirmed {
				a.windows.Untrack(a.window)
				a.window.Close()
			}
		})
	})
	a.window.SetMaster()
}
