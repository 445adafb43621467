// Package tui provides the Bubble Tea game surface.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/reminisce/internal/engine"
	"github.com/verte-zerg/reminisce/internal/games"
	"github.com/verte-zerg/reminisce/internal/store"
)

type screen int

const (
	menuScreen screen = iota
	gameScreen
)

// timerMsg delivers an engine timer once its delay has elapsed. Every
// session restarts its generations at 1, so a tick is only applied to the
// session that scheduled it.
type timerMsg struct {
	session *games.Session
	timer   engine.Timer
}

// Config wires a Model.
type Config struct {
	Games []games.Definition
	// Start opens a game directly instead of the menu. Esc then quits.
	Start    string
	Level    int
	Source   engine.Source
	Recorder *store.Recorder
	Log      zerolog.Logger
}

// Model implements the Bubble Tea game UI.
type Model struct {
	defs     []games.Definition
	source   engine.Source
	recorder *store.Recorder
	log      zerolog.Logger
	keys     keyMap
	help     help.Model

	width  int
	height int

	screen     screen
	menuCursor int
	fromMenu   bool

	session *games.Session
	queue   *engine.Queue
	pane    int
	cursor  [2]int
	hint    engine.ItemID
	notice  string
}

var (
	cursorColor = lipgloss.Color("#C89A3A")
	cardColors  = map[cardState]lipgloss.Color{
		cardSelected: lipgloss.Color("#4DA3FF"),
		cardMatched:  lipgloss.Color("#52C41A"),
		cardCorrect:  lipgloss.Color("#52C41A"),
		cardRejected: lipgloss.Color("#FF4D4F"),
		cardWrong:    lipgloss.Color("#FF4D4F"),
		cardHint:     lipgloss.Color("#C89A3A"),
	}

	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E")).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(cursorColor)
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#52C41A"))
	failureStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	menuItemStyle = lipgloss.NewStyle().PaddingLeft(2)
	menuCurStyle  = lipgloss.NewStyle().Foreground(cursorColor).Bold(true)
)

// NewModel constructs the game UI.
func NewModel(cfg Config) (*Model, error) {
	if len(cfg.Games) == 0 {
		return nil, errors.New("no games available")
	}
	m := &Model{
		defs:     cfg.Games,
		source:   cfg.Source,
		recorder: cfg.Recorder,
		log:      cfg.Log,
		keys:     newKeyMap(),
		help:     help.New(),
		fromMenu: cfg.Start == "",
	}
	if cfg.Start == "" {
		return m, nil
	}
	def, ok := games.Lookup(cfg.Games, cfg.Start)
	if !ok {
		return nil, fmt.Errorf("unknown game %q", cfg.Start)
	}
	if err := m.open(def, cfg.Level); err != nil {
		return nil, err
	}
	return m, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.flushTimers()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case timerMsg:
		if m.session == nil || msg.session != m.session {
			return m, nil
		}
		if m.session.Engine().Fire(msg.timer) {
			m.log.Debug().Str("timer", msg.timer.Kind.String()).Uint64("generation", msg.timer.Generation).Msg("timer fired")
			if msg.timer.Kind == engine.TimerAdvance {
				m.hint = ""
				m.cursor = [2]int{}
				m.pane = 0
			}
		}
		return m, m.flushTimers()
	case tea.KeyMsg:
		if m.screen == menuScreen {
			return m.updateMenu(msg)
		}
		return m.updateGame(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), msg.Type == tea.KeyEsc:
		return m, tea.Quit
	case msg.Type == tea.KeyUp || msg.Type == tea.KeyLeft:
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case msg.Type == tea.KeyDown || msg.Type == tea.KeyRight || msg.Type == tea.KeyTab:
		if m.menuCursor < len(m.defs)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Choose):
		if err := m.open(m.defs[m.menuCursor], 0); err != nil {
			m.notice = err.Error()
			m.log.Error().Err(err).Str("game", m.defs[m.menuCursor].ID).Msg("failed to open game")
			return m, nil
		}
		return m, m.flushTimers()
	}
	return m, nil
}

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.forMode(m.flags())
	eng := m.session.Engine()
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.close()
		return m, nil
	case msg.Type == tea.KeyEsc:
		return m, tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, keys.Left):
		m.move(-1)
	case key.Matches(msg, keys.Right):
		m.move(1)
	case key.Matches(msg, keys.Pane):
		m.pane = 1 - m.pane
	case key.Matches(msg, keys.Skip):
		eng.SkipStudy()
	case key.Matches(msg, keys.Choose):
		if eng.Snapshot().Studying {
			eng.SkipStudy()
			break
		}
		m.choose()
	case key.Matches(msg, keys.Submit):
		m.report(eng.Submit())
	case key.Matches(msg, keys.Hint):
		if it, ok := eng.Hint(); ok {
			m.hint = it.ID
		}
	case key.Matches(msg, keys.Reset):
		eng.Reset()
		m.hint = ""
		m.notice = ""
		m.log.Info().Str("game", m.session.Definition().ID).Msg("round reset")
	case key.Matches(msg, keys.Level):
		if err := m.session.ToggleDifficulty(); err != nil {
			m.report(err)
			break
		}
		m.cursor = [2]int{}
		m.pane = 0
		m.hint = ""
		m.log.Info().Str("game", m.session.Definition().ID).Str("level", m.session.LevelName()).Msg("difficulty changed")
	}
	return m, m.flushTimers()
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	if m.screen == menuScreen {
		body = m.renderMenu()
	} else {
		body = m.renderGame()
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	footerHeight := lipgloss.Height(footer)
	content := lipgloss.Place(m.width, m.height-footerHeight, lipgloss.Center, lipgloss.Center, body)
	return content + "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)
}

func (m *Model) open(def games.Definition, level int) error {
	queue := &engine.Queue{}
	var sess *games.Session
	levelName := func() string {
		if sess == nil {
			return ""
		}
		return sess.LevelName()
	}
	opts := []engine.Option{
		engine.WithScheduler(queue),
		engine.WithObserver(m.observer(def.ID, levelName)),
	}
	if m.source != nil {
		opts = append(opts, engine.WithSource(m.source))
	}
	sess, err := games.NewSession(def, opts...)
	if err != nil {
		return err
	}
	if level > 0 {
		if err := sess.ChangeDifficulty(level); err != nil {
			return err
		}
	}
	m.session = sess
	m.queue = queue
	m.screen = gameScreen
	m.pane = 0
	m.cursor = [2]int{}
	m.hint = ""
	m.notice = ""
	m.log.Info().Str("game", def.ID).Str("level", sess.LevelName()).Str("session", m.recorder.SessionID()).Msg("game opened")
	return nil
}

func (m *Model) close() {
	if m.queue != nil {
		m.queue.Cancel()
	}
	m.session = nil
	m.queue = nil
	m.screen = menuScreen
	m.notice = ""
}

func (m *Model) observer(game string, level func() string) func(engine.Result) {
	record := m.recorder.Observer(game, level)
	return func(res engine.Result) {
		m.log.Info().
			Str("game", game).
			Str("level", level()).
			Int("round", res.Round).
			Str("outcome", res.Outcome.String()).
			Int("score", res.Score).
			Int("attempts", res.Attempts).
			Msg("round resolved")
		record(res)
	}
}

// flushTimers turns the engine's pending timers into tea.Tick commands.
// Ticks cannot be recalled, so cancellation relies on Update dropping ticks
// from a closed session and Engine.Fire dropping stale generations.
func (m *Model) flushTimers() tea.Cmd {
	if m.queue == nil {
		return nil
	}
	timers := m.queue.Drain()
	if len(timers) == 0 {
		return nil
	}
	sess := m.session
	cmds := make([]tea.Cmd, 0, len(timers))
	for _, t := range timers {
		t := t
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return timerMsg{session: sess, timer: t}
		}))
	}
	return tea.Batch(cmds...)
}

func (m *Model) flags() modeFlags {
	snap := m.session.Engine().Snapshot()
	return modeFlags{
		twoPanes: snap.Mode == engine.ModePairing || snap.Mode == engine.ModeSort,
		submit:   snap.Mode == engine.ModeSet,
		hint:     snap.Mode == engine.ModeSequence,
		studying: snap.Studying,
		levels:   m.session.HasLevels(),
		menu:     m.fromMenu,
	}
}

func (m *Model) move(delta int) {
	n := len(cardsFor(m.session.Engine().Snapshot(), m.pane, ""))
	if n == 0 {
		return
	}
	m.cursor[m.pane] = (m.cursor[m.pane] + delta + n) % n
}

func (m *Model) choose() {
	eng := m.session.Engine()
	snap := eng.Snapshot()
	idx := m.cursor[m.pane]
	m.notice = ""
	if m.pane == 1 {
		switch snap.Mode {
		case engine.ModePairing:
			if idx < len(snap.Partners) {
				m.report(eng.SelectPartner(snap.Partners[idx].ID))
			}
		case engine.ModeSort:
			if idx < len(snap.Categories) {
				m.report(eng.SelectTarget(snap.Categories[idx].ID))
				m.pane = 0
			}
		}
		return
	}
	if idx >= len(snap.Items) {
		return
	}
	m.report(eng.Select(snap.Items[idx].ID))
	m.hint = ""
	if snap.Mode == engine.ModeSort && len(eng.Snapshot().Selection) > 0 {
		m.pane = 1
	}
}

func (m *Model) report(err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, engine.ErrEmptySelection):
		m.notice = "Select at least one item first."
	case errors.Is(err, engine.ErrNoPendingItem):
		m.notice = "Pick an item before choosing a container."
	default:
		m.notice = err.Error()
	}
	m.log.Debug().Err(err).Msg("rejected input")
}

func (m *Model) renderMenu() string {
	lines := []string{titleStyle.Render("Reminisce"), pendingStyle.Render("Choose a game"), ""}
	for i, def := range m.defs {
		line := fmt.Sprintf("%-22s %s", def.Name, pendingStyle.Render(def.Description))
		if i == m.menuCursor {
			lines = append(lines, menuCurStyle.Render("> ")+line)
			continue
		}
		lines = append(lines, menuItemStyle.Render(line))
	}
	if m.notice != "" {
		lines = append(lines, "", failureStyle.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderGame() string {
	snap := m.session.Engine().Snapshot()
	contentWidth := int(float64(m.width) * 0.85)
	header := []string{titleStyle.Render(snap.Title)}
	if snap.Studying {
		header = append(header, promptStyle.Render("Memorize the items on the tray."))
		study := make([]card, 0, len(snap.Study))
		for _, it := range snap.Study {
			study = append(study, card{text: it.Label})
		}
		return lipgloss.JoinVertical(lipgloss.Center,
			strings.Join(header, "\n"),
			"",
			layoutCards(study, contentWidth),
			"",
			pendingStyle.Render("Press s when you are ready."),
		)
	}
	header = append(header, promptStyle.Render(snap.Prompt))
	parts := []string{strings.Join(header, "\n"), ""}

	panes := 1
	if m.flags().twoPanes {
		panes = 2
	}
	for p := 0; p < panes; p++ {
		cards := cardsFor(snap, p, m.hint)
		if p == m.pane && m.cursor[p] < len(cards) {
			cards[m.cursor[p]].cursor = true
		}
		parts = append(parts, layoutCards(cards, contentWidth))
	}

	switch {
	case snap.Feedback != "" && snap.Outcome == engine.OutcomeFailure:
		parts = append(parts, "", failureStyle.Render(snap.Feedback))
	case snap.Feedback != "" && snap.Outcome == engine.OutcomeSuccess:
		parts = append(parts, "", successStyle.Render(snap.Feedback))
	case snap.Feedback != "" && snap.Rejected != "":
		parts = append(parts, "", failureStyle.Render(snap.Feedback))
	case snap.Feedback != "":
		parts = append(parts, "", promptStyle.Render(snap.Feedback))
	}
	if m.notice != "" {
		parts = append(parts, "", pendingStyle.Render(m.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func (m *Model) renderFooter() string {
	if m.screen == menuScreen || m.session == nil {
		return footerStyle.Render(m.help.View(menuKeys{m.keys}))
	}
	snap := m.session.Engine().Snapshot()
	segments := []string{fmt.Sprintf("Score %d", snap.Score), fmt.Sprintf("Round %d", snap.Round)}
	if snap.Total > 0 {
		segments = append(segments, fmt.Sprintf("%d of %d", snap.Position, snap.Total))
	}
	if snap.Cycle > 1 {
		segments = append(segments, fmt.Sprintf("Cycle %d", snap.Cycle))
	}
	if m.session.HasLevels() {
		segments = append(segments, "Level "+m.session.LevelName())
	}
	status := footerStyle.Render(strings.Join(segments, " · "))
	return status + "\n" + m.help.View(m.keys.forMode(m.flags()))
}

type menuKeys struct {
	keys keyMap
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.keys.Choose, k.keys.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
