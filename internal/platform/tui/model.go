package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/typestrike/internal/core"
	"github.com/vovakirdan/typestrike/internal/games/typestrike"
	"github.com/vovakirdan/typestrike/internal/registry"
	"github.com/vovakirdan/typestrike/internal/storage"
)

// helpRows is the number of rows reserved below the game screen.
const helpRows = 1

// tinter is implemented by games that draw a full-screen color flash.
type tinter interface {
	Tint() (core.RGBA, uint8)
}

// Model is the Bubble Tea model that hosts a game: it pumps frames,
// collects input facts between ticks and renders the screen buffer.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	worldH     float64
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       *KeyMapper
	help       help.Model
	lastTick   time.Time

	history     HistoryModel
	showHistory bool
	quitting    bool
}

// NewModel creates a new Bubble Tea model for the given game. worldH is the
// simulation's world height used to derive the viewport from the terminal
// size. store and logger may be nil.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, worldH float64) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpRows, 1)),
		store:      store,
		logger:     logger,
		config:     cfg,
		worldH:     worldH,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       help.New(),
		history:    NewHistoryModel(store, game.ID(), cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Keys only record facts; the game
// reads them on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHistory {
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		if m.history.Closed() {
			m.showHistory = false
		}
		return m, cmd
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score)
		return m, tea.Quit
	}

	if msg.Type == tea.KeyTab && m.gameState.Phase != typestrike.PhasePlaying.String() {
		m.history.Open()
		m.showHistory = true
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps running;
// the next frame carries the new viewport.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

// handleTick advances the simulation by the wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := core.Frame{
		Delta:    frameDelta(m.lastTick, now),
		Viewport: typestrike.ViewportFor(m.screen.Width(), m.screen.Height(), m.worldH),
		Input:    m.inputFrame,
	}
	m.lastTick = now

	result := m.game.Step(frame)
	m.gameState = result.State
	for _, e := range result.Events {
		m.handleEvent(e)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// handleEvent logs a game event and records finished sessions.
func (m *Model) handleEvent(e core.Event) {
	switch ev := e.(type) {
	case typestrike.SessionEnded:
		r := ev.Report
		m.logger.Info(e.EventName(),
			"level", r.LevelID, "outcome", r.Outcome, "score", r.Score,
			"accuracy", r.Accuracy, "wpm", r.WPM, "max_combo", r.MaxCombo)
		m.saveRun(r)
	case typestrike.AchievementUnlocked:
		m.logger.Info(e.EventName(), "id", ev.Achievement.ID, "name", ev.Achievement.Name)
	case typestrike.PhaseChanged:
		m.logger.Debug(e.EventName(), "from", ev.From, "to", ev.To)
	case typestrike.GroundMiss:
		m.logger.Debug(e.EventName(), "char", string(ev.Char), "lives", ev.LivesLeft)
	case typestrike.WrongKey:
		m.logger.Debug(e.EventName(), "char", string(ev.Char))
	case typestrike.LetterHit:
		m.logger.Debug(e.EventName(), "char", string(ev.Char), "points", ev.Points, "combo", ev.Combo)
	default:
		m.logger.Debug(e.EventName())
	}
}

// saveRun stores a finished session. Failures are logged and play goes on.
func (m *Model) saveRun(r typestrike.Report) {
	if m.store == nil {
		return
	}
	run := storage.Run{
		GameID:    m.game.ID(),
		LevelID:   r.LevelID,
		LevelName: r.LevelName,
		Outcome:   r.Outcome.String(),
		Score:     r.Score,
		Accuracy:  r.Accuracy,
		WPM:       r.WPM,
		MaxCombo:  r.MaxCombo,
		Correct:   r.Correct,
		Total:     r.Total,
		Duration:  r.Duration,
	}
	if _, err := m.store.SaveRun(run, r.Typed, r.Errors); err != nil {
		m.logger.Warn("saving run", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHistory {
		return m.history.View()
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	var tint Tint
	if t, ok := m.game.(tinter); ok {
		tint.Color, tint.Alpha = t.Tint()
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen, tint) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys))
}

// Run starts the Bubble Tea program for the given game.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig, worldH float64) error {
	model := NewModel(game, store, logger, cfg, worldH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
