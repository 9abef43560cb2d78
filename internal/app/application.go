package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/kk-code-lab/rgallery/internal/ack"
	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/config"
	"github.com/kk-code-lab/rgallery/internal/logging"
	statepkg "github.com/kk-code-lab/rgallery/internal/state"
	"github.com/kk-code-lab/rgallery/internal/ui/input"
	renderui "github.com/kk-code-lab/rgallery/internal/ui/render"
	"github.com/kk-code-lab/rgallery/internal/window"
)

// Options configure a new Application.
type Options struct {
	Config *config.Config
	Logger *logging.Logger
	Source catalog.Source
	// View is a navigation query to open instead of the default view.
	View string
	Ack  ack.Flag
}

// Application represents the running app.
type Application struct {
	screen         tcell.Screen
	state          *statepkg.AppState
	reducer        *statepkg.StateReducer
	renderer       *renderui.Renderer
	input          *input.InputHandler
	actionCh       chan statepkg.Action
	shouldQuit     bool
	clipboardCmd   []string
	clipboardAvail bool
	frameInterval  time.Duration
	logger         zerolog.Logger

	lastClickIndex int
	lastClickTime  time.Time
}

// NewApplication opens the terminal and prepares the initial state.
func NewApplication(opts Options) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newApplication(screen, opts)
}

func newApplication(screen tcell.Screen, opts Options) (*Application, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Source == nil {
		return nil, catalog.ErrEmptySource
	}

	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	logger := opts.Logger.Component("app")
	clipboardCmd, clipboardAvail := detectClipboard()

	state := newInitialState(opts, clipboardAvail)
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	state.SetDispatch(func(action statepkg.Action) {
		select {
		case actionCh <- action:
		default:
			go func() { actionCh <- action }()
		}
	})

	renderer := renderui.NewRenderer(screen)
	inputHandler := input.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        statepkg.NewStateReducer(),
		renderer:       renderer,
		input:          inputHandler,
		actionCh:       actionCh,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
		frameInterval:  opts.Config.FrameInterval(),
		logger:         logger,
		lastClickIndex: -1,
	}
	state.Viewport = &screenViewport{state: state, renderer: renderer}

	if opts.View != "" {
		app.reduce(statepkg.ApplyQueryAction{Query: opts.View})
	}
	app.reduce(statepkg.LoadCatalogAction{})

	logger.Info().
		Str("source", opts.Source.String()).
		Int("width", w).
		Int("height", h).
		Bool("disclaimer", state.DisclaimerVisible).
		Msg("application started")
	return app, nil
}

func newInitialState(opts Options, clipboardAvail bool) *statepkg.AppState {
	cfg := opts.Config
	state := statepkg.NewAppState(
		layoutFromConfig(cfg),
		trackerFromConfig(cfg),
		cfg.Layout.RestoreAttempts,
		opts.Logger.Component("state"),
	)
	state.CatalogSource = opts.Source
	state.CatalogPaths = cfg.PathOptions()
	state.CatalogLoader = catalog.NewAsyncLoader()
	state.ClipboardAvailable = clipboardAvail
	state.Disclaimer = opts.Ack

	acknowledged, err := opts.Ack.Acknowledged()
	if err != nil {
		opts.Logger.Warn().Err(err).Msg("read acknowledgement flag")
	}
	state.DisclaimerVisible = !acknowledged
	return state
}

func layoutFromConfig(cfg *config.Config) statepkg.Layout {
	return statepkg.Layout{
		WindowSize:       cfg.Layout.WindowSize,
		HeaderHeight:     cfg.Layout.HeaderHeight,
		SummaryHeight:    cfg.Layout.SummaryHeight,
		DefaultRowHeight: cfg.Layout.DefaultRowHeight,
		CardWidth:        cfg.Layout.CardWidth,
		ColumnGap:        cfg.Layout.ColumnGap,
		ScrollSettle:     cfg.ScrollSettle(),
	}
}

func trackerFromConfig(cfg *config.Config) window.Tracker {
	return window.Tracker{
		HalfRowThreshold: cfg.Layout.HalfRowThreshold,
		BufferRows:       cfg.Layout.BufferRows,
	}
}

// Close cleans up resources.
func (app *Application) Close() error {
	if app.state.CatalogLoader != nil {
		app.state.CatalogLoader.CancelAll()
	}
	app.screen.Fini()
	return nil
}

// ShareQuery returns the navigation query of the view on exit.
func (app *Application) ShareQuery() string {
	return app.state.ShareQuery()
}

func (app *Application) reduce(action statepkg.Action) {
	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		app.logger.Debug().Err(err).Str("action", actionName(action)).Msg("action failed")
	}
}
