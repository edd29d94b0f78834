package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/userdesk/internal/logtail"
	"github.com/five82/userdesk/internal/prefs"
	"github.com/five82/userdesk/internal/reqres"
	"github.com/five82/userdesk/internal/state"
)

// Store is the view-state surface the UI reads and drives.
// *state.Store satisfies it.
type Store interface {
	Snapshot() state.Snapshot
	Subscribe(fn func(state.Snapshot)) func()
	CreateUser(name, email string)
	SubmitDefaultUser()
	FetchRandomUser()
	Reset(which state.Slot)
	DismissToast()
}

// Options configures the UI.
type Options struct {
	Context   context.Context // cancelling it ends the program
	Store     Store           // nil shows an idle screen that ignores requests
	Prefs     prefs.Prefs // theme and form prefill
	PrefsPath string      // empty uses prefs.DefaultPath()
	LogFile   string      // tailed by the activity panel; empty hides it
	Logger    *zap.Logger
}

const (
	fieldName = iota
	fieldEmail
	fieldCount
)

const (
	invalidFormMessage = "Enter a name and a valid email address"
	activityLines      = 8
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store     Store
	prefsPath string
	prefs     prefs.Prefs
	logFile   string
	logger    *zap.Logger

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	width    int
	height   int
	showHelp bool

	// Form state
	inputs  [fieldCount]textinput.Model
	focus   int
	formErr string

	// Data state
	snapshot state.Snapshot

	// Activity panel
	showActivity bool
	activity     []string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := opts.Store
	if store == nil {
		store = idleStore{}
	}

	m := Model{
		store:     store,
		prefsPath: prefsPath,
		prefs:     opts.Prefs,
		logFile:   opts.LogFile,
		logger:    logger,
		theme:     GetTheme(opts.Prefs.Theme),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.prefs.Theme = m.theme.Name
	if m.logFile == "" {
		m.keys.Activity.SetEnabled(false)
	}

	m.inputs[fieldName] = newInput("Name", opts.Prefs.LastName)
	m.inputs[fieldEmail] = newInput("Email", opts.Prefs.LastEmail)
	m.inputs[fieldName].Focus()

	m.applySnapshot(m.store.Snapshot())
	m.applyTheme()
	return m
}

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = 128
	in.Width = 40
	in.SetValue(value)
	return in
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		if m.showActivity {
			return m, readActivityCmd(m.logFile)
		}
		return m, nil

	case activityMsg:
		m.activity = msg.lines
		if msg.err != nil {
			m.logger.Debug("read activity failed", zap.Error(msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Unbound keys go to the focused field.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.applyTheme()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Activity):
		m.showActivity = !m.showActivity
		if m.showActivity {
			return m, readActivityCmd(m.logFile)
		}
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.dismiss()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		return m, m.focusField((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keys.PrevField):
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.Submit):
		m.submitForm()
		return m, nil

	case key.Matches(msg, m.keys.SubmitDefault):
		m.formErr = ""
		m.store.SubmitDefaultUser()
		return m, nil

	case key.Matches(msg, m.keys.FetchRandom):
		m.formErr = ""
		m.store.FetchRandomUser()
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// submitForm validates the form and starts a create request. The raw
// field values are sent; validation only gates the request.
func (m *Model) submitForm() {
	name := m.inputs[fieldName].Value()
	email := m.inputs[fieldEmail].Value()
	if !state.FormValid(name, email) {
		m.formErr = invalidFormMessage
		return
	}
	m.formErr = ""
	m.store.CreateUser(name, email)

	m.prefs.LastName = strings.TrimSpace(name)
	m.prefs.LastEmail = strings.TrimSpace(email)
	m.savePrefs()
}

// dismiss hides the toast if shown, otherwise clears failed slots and
// the form hint.
func (m *Model) dismiss() {
	if m.snapshot.ShowSuccessToast {
		m.store.DismissToast()
		return
	}
	if _, failed := m.snapshot.Create.Err(); failed {
		m.store.Reset(state.SlotCreate)
	}
	if _, failed := m.snapshot.Fetch.Err(); failed {
		m.store.Reset(state.SlotFetch)
	}
	m.formErr = ""
}

func (m *Model) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.applyTheme()
	return m.inputs[m.focus].Focus()
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.keys.setRequestsEnabled(!snap.IsLoading())
}

// applyTheme restyles the components that hold their own styles.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
	for i := range m.inputs {
		m.inputs[i].TextStyle = styles.Text
		m.inputs[i].PlaceholderStyle = styles.FaintText
		m.inputs[i].Cursor.Style = styles.AccentText
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// idleStore stands in for a missing Store.
type idleStore struct{}

func (idleStore) Snapshot() state.Snapshot {
	return state.Snapshot{
		Create:    state.Idle[reqres.CreatedUserRecord](),
		Fetch:     state.Idle[reqres.UserRecord](),
		Connected: true,
	}
}
func (idleStore) Subscribe(func(state.Snapshot)) func() { return func() {} }
func (idleStore) CreateUser(string, string) {}
func (idleStore) SubmitDefaultUser() {}
func (idleStore) FetchRandomUser() {}
func (idleStore) Reset(state.Slot) {}
func (idleStore) DismissToast() {}

// Messages

type snapshotMsg state.Snapshot

type activityMsg struct {
	lines []string
	err   error
}

// Commands

func readActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		raw, err := logtail.Read(path, activityLines)
		lines := make([]string, 0, len(raw))
		for _, line := range raw {
			lines = append(lines, logtail.Parse(line).String())
		}
		return activityMsg{lines: lines, err: err}
	}
}

// Run starts the Bubble Tea program and forwards store transitions to it
// until the program exits.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := m.store.Subscribe(func(snap state.Snapshot) {
		p.Send(snapshotMsg(snap))
	})
	defer unsubscribe()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
