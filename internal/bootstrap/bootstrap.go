package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	authoutadapter "leadclip/internal/modules/auth/adapter/out"
	authin "leadclip/internal/modules/auth/port/in"
	authservice "leadclip/internal/modules/auth/service"
	authusecase "leadclip/internal/modules/auth/usecase"
	captureoutadapter "leadclip/internal/modules/capture/adapter/out"
	captureservice "leadclip/internal/modules/capture/service"
	captureusecase "leadclip/internal/modules/capture/usecase"
	draftoutadapter "leadclip/internal/modules/draft/adapter/out"
	draftin "leadclip/internal/modules/draft/port/in"
	draftservice "leadclip/internal/modules/draft/service"
	draftusecase "leadclip/internal/modules/draft/usecase"
	prospectoutadapter "leadclip/internal/modules/prospect/adapter/out"
	prospectin "leadclip/internal/modules/prospect/port/in"
	prospectservice "leadclip/internal/modules/prospect/service"
	prospectusecase "leadclip/internal/modules/prospect/usecase"
	relayoutadapter "leadclip/internal/modules/relay/adapter/out"
	relayin "leadclip/internal/modules/relay/port/in"
	relayout "leadclip/internal/modules/relay/port/out"
	relayservice "leadclip/internal/modules/relay/service"
	relayusecase "leadclip/internal/modules/relay/usecase"
	"leadclip/internal/platform/clock"
	"leadclip/internal/platform/config"
	uiapp "leadclip/internal/ui/app"
	uipopup "leadclip/internal/ui/popup"
)

// App wires every module once and hands the usecases to whichever
// process entry point is running.
type App struct {
	Auth      authin.Usecase
	Drafts    draftin.Usecase
	Prospects prospectin.Usecase
	Relay     relayin.Usecase

	cfg          config.Config
	daemons      relayout.DaemonStore
	instructions relayout.InstructionStore
	closeCache   func() error
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}

	authUC := authusecase.NewInteractor(authservice.NewAuthService(
		clk,
		authoutadapter.NewHTTPAuthAPI(cfg.APIBaseURL),
		authoutadapter.NewKeyringTokenStore(),
		authoutadapter.NewFileUserStore(cfg.ProfileDir),
	))

	draftUC := draftusecase.NewInteractor(draftservice.NewDraftService(
		clk,
		draftoutadapter.NewFileDraftStore(cfg.ProfileDir),
		draftoutadapter.NewFilePanelStateStore(cfg.ProfileDir),
	))

	cache, err := prospectoutadapter.NewSQLiteCache(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open prospect cache: %w", err)
	}
	prospectUC := prospectusecase.NewInteractor(
		prospectservice.NewProspectService(clk, prospectoutadapter.NewHTTPBackendAPI(cfg.APIBaseURL), cache),
		authUC,
		draftUC,
	)

	daemons := relayoutadapter.NewFileDaemonStore(cfg.ProfileDir)
	instructions := relayoutadapter.NewFileInstructionStore(cfg.ProfileDir)
	relayUC := relayusecase.NewInteractor(relayservice.NewRelayService(
		clk,
		daemons,
		instructions,
		relayoutadapter.NewJSONRPCClient(),
		relayoutadapter.NewJSONRPCServer(),
		cfg.ProfileDir,
	))

	return &App{
		Auth:         authUC,
		Drafts:       draftUC,
		Prospects:    prospectUC,
		Relay:        relayUC,
		cfg:          cfg,
		daemons:      daemons,
		instructions: instructions,
		closeCache:   cache.Close,
	}, nil
}

// Close releases long-lived resources, currently only the cache.
func (a *App) Close() error {
	if a.closeCache != nil {
		return a.closeCache()
	}
	return nil
}

// RunPanel runs the panel TUI. The feed serving panel.sock and the
// instruction watcher start before the program so captures queued
// while the panel was down apply on the first render.
func RunPanel(ctx context.Context, app *App) error {
	model := uiapp.NewModel(app.Auth, app.Drafts, app.Prospects, app.Relay, app.cfg.DashboardURL)
	program := tea.NewProgram(model, tea.WithAltScreen())

	feedCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	feed := uiapp.NewFeed(app.Drafts, app.instructions, relayoutadapter.NewJSONRPCServer(),
		app.daemons.PanelSocketPath(), program.Send)
	if err := feed.Run(feedCtx); err != nil {
		return err
	}

	_, err := program.Run()
	return err
}

// RunWatch runs the clipboard watcher with its popup surface and the
// watcher-side socket that mirrors panel state.
func RunWatch(ctx context.Context, app *App) error {
	publisher := captureoutadapter.NewRelayPublisher(app.Relay)
	program := tea.NewProgram(uipopup.NewModel(publisher), tea.WithAltScreen())

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	feed := uipopup.NewFeed(relayoutadapter.NewJSONRPCServer(), app.daemons.WatcherSocketPath(), program.Send)
	if err := feed.Run(watchCtx); err != nil {
		return err
	}

	captureUC := captureusecase.NewInteractor(captureservice.NewPopupService(
		uipopup.NewSurface(program),
		publisher,
		captureoutadapter.NewExecClipboard(),
		captureoutadapter.NewDraftValues(app.Drafts),
		app.cfg.PopupTimeout,
		app.cfg.PollEvery,
	))
	go func() {
		_ = captureUC.Watch(watchCtx)
	}()

	_, err := program.Run()
	return err
}
