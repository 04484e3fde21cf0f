package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tatianab/napele/internal/auth"
	"github.com/tatianab/napele/internal/engine"
	"github.com/tatianab/napele/internal/i18n"
	"github.com/tatianab/napele/internal/models"
)

type sessionState int

const (
	stateLogin sessionState = iota
	stateRegister
	stateVerify
	stateReset
	stateMenu
	statePlaying
	stateOutcome
	stateReflection
	stateProfile
)

// Accounts is the account service used by the sign-in screens.
type Accounts interface {
	BeginRegistration(ctx context.Context, r auth.Registration) (*auth.Challenge, error)
	CompleteRegistration(ctx context.Context, ch *auth.Challenge, code string) (string, error)
	Resend(ctx context.Context, ch *auth.Challenge) error
	CheckEmail(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (string, error)
	BeginReset(ctx context.Context, email, newPassword, confirm string) (*auth.Challenge, error)
	CompleteReset(ctx context.Context, ch *auth.Challenge, code string) error
	EmailDomains() []string
}

// Reflector writes a personal reflection about a finished playthrough.
type Reflector interface {
	Reflect(ctx context.Context, storyTitle string, out engine.Outcome, profile engine.Profile) (string, error)
}

// Options wires the interface to the rest of the application.
type Options struct {
	Accounts Accounts
	Story    *models.StoryGraph
	StoryID  string
	// Narrator is optional; without it only the bundled reflection is shown.
	Narrator Reflector
	Logger   *slog.Logger
	Language language.Tag
}

type model struct {
	state sessionState
	opts  Options
	p     *message.Printer
	log   *slog.Logger

	width    int
	height   int
	viewport viewport.Model

	form      form
	challenge *auth.Challenge
	busy      bool

	nickname  string
	status    string
	statusErr bool

	menuCursor int
	progress   map[string]models.Progress

	session    *engine.PlaySession
	progressID string
	cursor     int
	outcome    engine.Outcome
	profile    engine.Profile
	reflection string
	reflectErr error
	reflecting bool
}

var (
	appTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			PaddingLeft(1)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5C5C5C")).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87AF87"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	sideStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// NewModel returns the initial model, showing the sign-in screen.
func NewModel(opts Options) model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Language == language.Und {
		opts.Language = i18n.PortugueseBR
	}
	m := model{
		opts:     opts,
		p:        i18n.Printer(opts.Language),
		log:      opts.Logger,
		width:    defaultWidth,
		height:   defaultHeight,
		viewport: viewport.New(defaultWidth-4, defaultHeight-12),
		progress: make(map[string]models.Progress),
		cursor:   -1,
	}
	m.showLogin("")
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.saveProgress()
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.state {
		case stateLogin, stateRegister, stateReset, stateVerify:
			return m.updateAccount(msg)
		case stateMenu:
			return m.updateMenu(msg)
		case statePlaying:
			return m.updatePlaying(msg)
		case stateOutcome:
			return m.updateOutcome(msg)
		case stateReflection:
			return m.updateReflection(msg)
		case stateProfile:
			return m.updateProfile(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-12, 5)
		m.refreshContent()
		return m, nil

	case emailCheckedMsg, loggedInMsg, challengeMsg, resentMsg, verifiedMsg:
		m.busy = false
		return m.handleAccountResult(msg)

	case reflectionMsg:
		if m.outcome.Key != msg.key {
			return m, nil
		}
		m.reflecting = false
		m.reflection, m.reflectErr = msg.text, msg.err
		if msg.err != nil {
			m.log.Warn("personal reflection failed", "error", msg.err)
		}
		m.refreshContent()
		return m, nil
	}

	return m, nil
}

func (m *model) setStatus(text string) {
	m.status, m.statusErr = text, false
}

func (m *model) setError(err error) {
	m.status, m.statusErr = m.errorText(err), true
}

func (m *model) clearStatus() {
	m.status, m.statusErr = "", false
}

func (m model) View() string {
	var body, help string

	switch m.state {
	case stateLogin, stateRegister, stateReset, stateVerify:
		body, help = m.viewAccount()
	case stateMenu:
		body, help = m.viewMenu()
	case statePlaying:
		body, help = m.viewPlaying()
	case stateOutcome:
		body, help = m.viewport.View(), m.p.Sprintf(i18n.OutcomeHelp)
	case stateReflection:
		body, help = m.viewport.View(), m.p.Sprintf(i18n.ReflectionHelp)
	case stateProfile:
		body, help = m.viewProfile()
	}

	header := appTitleStyle.Render(m.p.Sprintf(i18n.AppTitle))
	if m.nickname != "" {
		header += "  " + helpStyle.Render(m.nickname)
	}

	status := ""
	switch {
	case m.busy:
		status = helpStyle.Render(m.p.Sprintf(i18n.Loading))
	case m.status != "" && m.statusErr:
		status = warnStyle.Render(m.status)
	case m.status != "":
		status = infoStyle.Render(m.status)
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		body,
		"",
		status,
		helpStyle.Render(help),
	) + "\n"
}

// Run starts the interface and blocks until the player quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
