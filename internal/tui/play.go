package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/napele/internal/engine"
	"github.com/tatianab/napele/internal/i18n"
	"github.com/tatianab/napele/internal/models"
)

const (
	liviaID      = "livia_story"
	inequalityID = "inequality_story"

	reflectTimeout = 60 * time.Second
	maxBar         = 22
)

type menuItem struct {
	id       string
	title    string
	playable bool
}

func (m model) menuItems() []menuItem {
	return []menuItem{
		{id: m.opts.StoryID, title: m.opts.Story.Title, playable: true},
		{id: liviaID, title: m.p.Sprintf(i18n.StoryLivia)},
		{id: inequalityID, title: m.p.Sprintf(i18n.StoryInequality)},
	}
}

func (m *model) showMenu() {
	m.state = stateMenu
	m.session = nil
	m.progress = make(map[string]models.Progress)
	saved, err := models.ListProgress(m.nickname)
	if err != nil {
		m.log.Warn("list progress", "nickname", m.nickname, "error", err)
		return
	}
	for _, p := range saved {
		m.progress[p.StoryID] = p
	}
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.menuCursor = (m.menuCursor + len(items) - 1) % len(items)
	case "down", "j":
		m.menuCursor = (m.menuCursor + 1) % len(items)
	case "enter":
		item := items[m.menuCursor]
		if !item.playable {
			m.setStatus(m.p.Sprintf(i18n.StoryInDevelopment, item.title))
			return m, nil
		}
		m.clearStatus()
		m.openStory()
		cmd := m.maybeReflect()
		return m, cmd
	}
	return m, nil
}

// openStory resumes the saved path of the bundled story, or starts over when
// there is none or the story was finished.
func (m *model) openStory() {
	m.progressID = ""
	saved, ok := m.progress[m.opts.StoryID]
	switch {
	case !ok:
		m.session = engine.NewSession(m.opts.Story)
	case saved.Completed:
		m.progressID = saved.ID
		m.session = engine.NewSession(m.opts.Story)
	default:
		m.progressID = saved.ID
		s, err := engine.Resume(m.opts.Story, saved.Path)
		if err != nil {
			m.log.Error("saved path does not replay", "nickname", m.nickname, "path", saved.Path, "error", err)
			m.setError(engine.ErrCorruption)
			s = engine.NewSession(m.opts.Story)
		}
		m.session = s
	}
	m.enterCurrent()
}

// enterCurrent shows the screen matching the session position.
func (m *model) enterCurrent() {
	m.cursor = -1
	if m.session.InOutcome() {
		m.enterOutcome()
		return
	}
	m.state = statePlaying
	m.refreshContent()
	m.viewport.GotoTop()
}

func (m *model) enterOutcome() {
	out, err := m.session.FinalOutcome()
	if err != nil {
		m.recoverCorruption(err)
		return
	}
	m.outcome = out
	m.profile = engine.Classify(out.Attributes)
	m.state = stateOutcome
	m.reflection, m.reflectErr, m.reflecting = "", nil, false
	m.refreshContent()
	m.viewport.GotoTop()
	m.log.Info("ending reached", "nickname", m.nickname, "outcome", out.Key, "profile", m.profile.Key)
}

func (m *model) recoverCorruption(err error) {
	m.log.Error("story session corrupted, restarting", "nickname", m.nickname, "path", m.session.Path(), "error", err)
	m.session.Restart()
	m.setError(engine.ErrCorruption)
	m.state = statePlaying
	m.cursor = -1
	m.saveProgress()
	m.refreshContent()
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	seg, _ := m.session.CurrentSegment()
	key := msg.String()

	switch key {
	case "esc":
		m.saveProgress()
		m.clearStatus()
		m.showMenu()
		return m, nil
	case "up", "k":
		if n := len(seg.Choices); n > 0 {
			if m.cursor < 0 {
				m.cursor = n - 1
			} else {
				m.cursor = (m.cursor + n - 1) % n
			}
			m.refreshContent()
		}
		return m, nil
	case "down", "j":
		if n := len(seg.Choices); n > 0 {
			m.cursor = (m.cursor + 1) % n
			m.refreshContent()
		}
		return m, nil
	case "enter":
		choice := ""
		if m.cursor >= 0 && m.cursor < len(seg.Choices) {
			choice = seg.Choices[m.cursor].Target
		}
		m.advance(choice)
		cmd := m.maybeReflect()
		return m, cmd
	case "b", "backspace":
		m.goBack()
		return m, nil
	case "r":
		m.restart()
		return m, nil
	}

	if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(seg.Choices) {
		m.cursor = n - 1
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) advance(choice string) {
	err := m.session.Advance(choice)
	switch {
	case err == nil:
		m.clearStatus()
		m.saveProgress()
		m.enterCurrent()
	case engine.IsInputError(err):
		m.setError(err)
	case engine.IsCorruption(err):
		m.recoverCorruption(err)
	default:
		m.setError(err)
	}
}

func (m *model) goBack() {
	err := m.session.GoBack()
	switch {
	case err == nil:
		m.clearStatus()
	case engine.IsInputError(err):
		m.setError(err)
		return
	default:
		// GoBack already restarted the session.
		m.log.Error("go back failed, session restarted", "nickname", m.nickname, "error", err)
		m.setError(engine.ErrCorruption)
	}
	m.saveProgress()
	m.enterCurrent()
}

func (m *model) restart() {
	m.session.Restart()
	m.clearStatus()
	m.saveProgress()
	m.enterCurrent()
}

func (m model) updateOutcome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = stateReflection
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil
	case "b", "backspace":
		m.goBack()
		return m, nil
	case "r":
		m.restart()
		return m, nil
	case "esc":
		m.showMenu()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// maybeReflect starts the personal reflection as soon as an ending is
// reached, so it is usually ready when the player gets to that screen.
func (m *model) maybeReflect() tea.Cmd {
	if m.state != stateOutcome || m.opts.Narrator == nil || m.reflecting {
		return nil
	}
	m.reflecting = true
	narrator := m.opts.Narrator
	title, out, profile := m.opts.Story.Title, m.outcome, m.profile
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reflectTimeout)
		defer cancel()
		text, err := narrator.Reflect(ctx, title, out, profile)
		return reflectionMsg{key: out.Key, text: text, err: err}
	}
}

type reflectionMsg struct {
	key  string
	text string
	err  error
}

func (m model) updateReflection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state = stateProfile
		return m, nil
	case "esc":
		m.showMenu()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.restart()
	case "b", "backspace":
		m.goBack()
	case "m", "esc":
		m.clearStatus()
		m.showMenu()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// saveProgress records the current path of the player. Failures are shown
// but never interrupt play.
func (m *model) saveProgress() {
	if m.session == nil || m.nickname == "" {
		return
	}
	p := models.Progress{
		ID:        m.progressID,
		Nickname:  m.nickname,
		StoryID:   m.opts.StoryID,
		Path:      m.session.Path(),
		Completed: m.session.InOutcome(),
	}
	if p.Completed {
		if out, err := m.session.FinalOutcome(); err == nil {
			p.Outcome = out.Key
			p.Profile = string(engine.Classify(out.Attributes).Key)
		}
	}
	if err := p.Save(); err != nil {
		m.log.Error("save progress", "nickname", m.nickname, "error", err)
		m.setError(errSaveFailed)
		return
	}
	m.progressID = p.ID
}

var errSaveFailed = errors.New("save progress failed")

// refreshContent re-renders the scrollable text of the current screen.
func (m *model) refreshContent() {
	width := m.viewport.Width
	wrap := textStyle.Width(width)

	switch m.state {
	case statePlaying:
		seg, ok := m.session.CurrentSegment()
		if !ok {
			return
		}
		m.viewport.SetContent(titleStyle.Render(seg.Title) + "\n\n" + wrap.Render(seg.Text))
	case stateOutcome:
		m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(m.outcome.Title),
			"",
			wrap.Render(m.outcome.Text),
			"",
			wrap.Render(m.opts.Story.Epilogue),
		))
	case stateReflection:
		parts := []string{titleStyle.Render(m.p.Sprintf(i18n.ReflectionTitle)), ""}
		switch {
		case m.reflecting:
			parts = append(parts, helpStyle.Render(m.p.Sprintf(i18n.ReflectionWait)), "")
		case m.reflection != "":
			parts = append(parts, appTitleStyle.Render(m.p.Sprintf(i18n.ReflectionAI)), wrap.Render(m.reflection), "")
		case m.reflectErr != nil:
			parts = append(parts, helpStyle.Render(m.p.Sprintf(i18n.ErrReflection)), "")
		}
		parts = append(parts, wrap.Render(m.opts.Story.Reflection))
		m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, parts...))
	}
}

func (m model) viewMenu() (string, string) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.p.Sprintf(i18n.MenuTitle)) + "\n\n")
	for i, item := range m.menuItems() {
		line := item.title
		if p, ok := m.progress[item.id]; ok {
			if p.Completed {
				line += " " + m.p.Sprintf(i18n.MenuCompleted)
			} else if len(p.Path) > 0 {
				line += " " + m.p.Sprintf(i18n.MenuContinue)
			}
		}
		switch {
		case i == m.menuCursor:
			line = selectedStyle.Render("> " + line)
		case !item.playable:
			line = disabledStyle.Render("  " + line)
		default:
			line = choiceStyle.Render("  " + line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n"), m.p.Sprintf(i18n.MenuHelp)
}

func (m model) viewPlaying() (string, string) {
	seg, _ := m.session.CurrentSegment()
	var b strings.Builder
	for i, c := range seg.Choices {
		line := fmt.Sprintf("%d. %s", i+1, c.Label)
		if i == m.cursor {
			b.WriteString(selectedStyle.Width(m.viewport.Width).Render(line))
		} else {
			b.WriteString(choiceStyle.Width(m.viewport.Width).Render(line))
		}
		b.WriteString("\n")
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		"",
		strings.TrimRight(b.String(), "\n"),
	)
	return body, m.p.Sprintf(i18n.StoryHelp)
}

func (m model) viewProfile() (string, string) {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.p.Sprintf(i18n.AttributesTitle)) + "\n\n")
	for _, a := range models.AllAttributes {
		v := m.outcome.Attributes[a]
		fmt.Fprintf(&b, "%-12s %+4d %s\n", i18n.AttributeName(m.p, a), v, renderBar(v))
	}

	profile := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.p.Sprintf(i18n.ProfileTitle)),
		"",
		appTitleStyle.Render(m.profile.Name),
		textStyle.Width(max(m.viewport.Width/2, 30)).Render(m.profile.Description),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		strings.TrimRight(b.String(), "\n")+"  ",
		sideStyle.Render(profile),
	)
	return body, m.p.Sprintf(i18n.ProfileHelp)
}

var (
	positiveBar = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAF5F"))
	negativeBar = lipgloss.NewStyle().Foreground(lipgloss.Color("#D75F5F"))
)

// renderBar draws one cell per point, capped at maxBar cells.
func renderBar(v int) string {
	n := min(abs(v), maxBar)
	bar := strings.Repeat("█", n)
	if v < 0 {
		return negativeBar.Render(bar)
	}
	return positiveBar.Render(bar)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
