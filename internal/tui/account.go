package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/napele/internal/auth"
	"github.com/tatianab/napele/internal/i18n"
)

const accountTimeout = 30 * time.Second

type field struct {
	key   string
	input textinput.Model
}

type form struct {
	fields []field
	focus  int
}

func newForm(keys ...string) form {
	f := form{}
	for _, key := range keys {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Width = 40
		switch {
		case isSecret(key):
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
			ti.CharLimit = 6
		case key == i18n.FieldCode:
			ti.CharLimit = auth.CodeLength
		case key == i18n.FieldNickname:
			ti.CharLimit = 10
		default:
			ti.CharLimit = 64
		}
		f.fields = append(f.fields, field{key: key, input: ti})
	}
	f.fields[0].input.Focus()
	return f
}

func (f *form) value(key string) string {
	for _, fd := range f.fields {
		if fd.key == key {
			return fd.input.Value()
		}
	}
	return ""
}

func (f *form) set(key, v string) {
	for i := range f.fields {
		if f.fields[i].key == key {
			f.fields[i].input.SetValue(v)
		}
	}
}

func (f *form) focused() string {
	return f.fields[f.focus].key
}

func (f *form) last() bool {
	return f.focus == len(f.fields)-1
}

func (f *form) focusOn(i int) tea.Cmd {
	if i < 0 {
		i = len(f.fields) - 1
	}
	i %= len(f.fields)
	f.fields[f.focus].input.Blur()
	f.focus = i
	return f.fields[i].input.Focus()
}

// toggleSecrets shows or hides every password field.
func (f *form) toggleSecrets() {
	for i := range f.fields {
		in := &f.fields[i].input
		switch in.EchoMode {
		case textinput.EchoPassword:
			in.EchoMode = textinput.EchoNormal
		case textinput.EchoNormal:
			if isSecret(f.fields[i].key) {
				in.EchoMode = textinput.EchoPassword
			}
		}
	}
}

func isSecret(key string) bool {
	return key == i18n.FieldPassword || key == i18n.FieldConfirm || key == i18n.FieldNewPassword
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f form) view(m model) string {
	var b strings.Builder
	for i, fd := range f.fields {
		label := m.p.Sprintf(fd.key)
		if i == f.focus {
			label = appTitleStyle.Render(label)
		} else {
			label = choiceStyle.Render(label)
		}
		b.WriteString(label + "\n" + fd.input.View() + "\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) showLogin(email string) {
	m.state = stateLogin
	m.challenge = nil
	m.form = newForm(i18n.FieldEmail, i18n.FieldPassword)
	if email != "" {
		m.form.set(i18n.FieldEmail, email)
	}
}

func (m *model) showRegister() {
	m.state = stateRegister
	m.challenge = nil
	m.form = newForm(i18n.FieldName, i18n.FieldNickname, i18n.FieldEmail, i18n.FieldPassword, i18n.FieldConfirm)
}

func (m *model) showReset(email string) tea.Cmd {
	m.state = stateReset
	m.challenge = nil
	m.form = newForm(i18n.FieldEmail, i18n.FieldNewPassword, i18n.FieldConfirm)
	if email == "" {
		return nil
	}
	m.form.set(i18n.FieldEmail, email)
	return m.form.focusOn(1)
}

func (m *model) showVerify(ch *auth.Challenge) {
	m.state = stateVerify
	m.challenge = ch
	m.form = newForm(i18n.FieldCode)
}

func (m model) updateAccount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		switch m.state {
		case stateLogin:
			return m, tea.Quit
		case stateVerify:
			email := ""
			if m.challenge != nil {
				email = m.challenge.Email
			}
			m.clearStatus()
			m.showLogin(email)
		default:
			m.clearStatus()
			m.showLogin("")
		}
		return m, nil
	case "tab", "down":
		return m, m.form.focusOn(m.form.focus + 1)
	case "shift+tab", "up":
		return m, m.form.focusOn(m.form.focus - 1)
	case "ctrl+r":
		if m.state == stateLogin {
			m.clearStatus()
			m.showRegister()
			return m, nil
		}
	case "ctrl+f":
		if m.state == stateLogin {
			m.clearStatus()
			return m, m.showReset(strings.TrimSpace(m.form.value(i18n.FieldEmail)))
		}
	case "ctrl+s":
		m.form.toggleSecrets()
		return m, nil
	case "ctrl+n":
		if m.state == stateVerify && m.challenge != nil {
			m.busy = true
			return m, m.resend(m.challenge)
		}
	case "enter":
		return m.submitField()
	}

	return m, m.form.update(msg)
}

// submitField checks the focused field and either moves on or runs the
// screen's action when the last field is confirmed.
func (m model) submitField() (tea.Model, tea.Cmd) {
	key := m.form.focused()
	value := m.form.value(key)

	switch m.state {
	case stateLogin:
		if key == i18n.FieldEmail {
			m.busy = true
			return m, m.checkEmail(value)
		}
		m.busy = true
		return m, m.login(m.form.value(i18n.FieldEmail), value)

	case stateRegister:
		if err := m.validateField(key); err != nil {
			m.setError(err)
			return m, nil
		}
		m.clearStatus()
		if !m.form.last() {
			return m, m.form.focusOn(m.form.focus + 1)
		}
		m.busy = true
		return m, m.beginRegistration(auth.Registration{
			Name:     m.form.value(i18n.FieldName),
			Nickname: m.form.value(i18n.FieldNickname),
			Email:    m.form.value(i18n.FieldEmail),
			Password: m.form.value(i18n.FieldPassword),
			Confirm:  m.form.value(i18n.FieldConfirm),
		})

	case stateReset:
		if key != i18n.FieldEmail {
			if err := m.validateField(key); err != nil {
				m.setError(err)
				return m, nil
			}
		}
		m.clearStatus()
		if !m.form.last() {
			return m, m.form.focusOn(m.form.focus + 1)
		}
		m.busy = true
		return m, m.beginReset(
			m.form.value(i18n.FieldEmail),
			m.form.value(i18n.FieldNewPassword),
			m.form.value(i18n.FieldConfirm),
		)

	case stateVerify:
		if !auth.ValidCodeFormat(strings.TrimSpace(value)) {
			m.setError(auth.ErrCodeFormat)
			return m, nil
		}
		m.busy = true
		return m, m.verify(m.challenge, value)
	}
	return m, nil
}

func (m model) validateField(key string) error {
	v := m.form.value(key)
	switch key {
	case i18n.FieldName:
		return auth.ValidateName(v)
	case i18n.FieldNickname:
		return auth.ValidateNickname(v)
	case i18n.FieldEmail:
		return auth.ValidateEmail(v, m.opts.Accounts.EmailDomains())
	case i18n.FieldPassword:
		return auth.ValidatePassword(v)
	case i18n.FieldNewPassword:
		return auth.ValidatePassword(v)
	case i18n.FieldConfirm:
		pw := m.form.value(i18n.FieldPassword)
		if m.state == stateReset {
			pw = m.form.value(i18n.FieldNewPassword)
		}
		return auth.ValidatePasswordPair(pw, v)
	}
	return nil
}

type emailCheckedMsg struct{ err error }

type loggedInMsg struct {
	nickname string
	err      error
}

type challengeMsg struct {
	ch  *auth.Challenge
	err error
}

type resentMsg struct{ err error }

type verifiedMsg struct {
	purpose  auth.Purpose
	nickname string
	err      error
}

func (m model) checkEmail(email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), accountTimeout)
		defer cancel()
		return emailCheckedMsg{m.opts.Accounts.CheckEmail(ctx, email)}
	}
}

func (m model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), accountTimeout)
		defer cancel()
		nickname, err := m.opts.Accounts.Login(ctx, email, password)
		return loggedInMsg{nickname, err}
	}
}

func (m model) beginRegistration(r auth.Registration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), accountTimeout)
		defer cancel()
		ch, err := m.opts.Accounts.BeginRegistration(ctx, r)
		return challengeMsg{ch, err}
	}
}

func (m model) beginReset(email, password, confirm string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), accountTimeout)
		defer cancel()
		ch, err := m.opts.Accounts.BeginReset(ctx, email, password, confirm)
		return challengeMsg{ch, err}
	}
}

func (m model) resend(ch *auth.Challenge) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), accountTimeout)
		defer cancel()
		return resentMsg{m.opts.Accounts.Resend(ctx, ch)}
	}
}

func (m model) verify(ch *auth.Challenge, code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), accountTimeout)
		defer cancel()
		if ch.Purpose == auth.PurposeReset {
			return verifiedMsg{purpose: ch.Purpose, err: m.opts.Accounts.CompleteReset(ctx, ch, code)}
		}
		nickname, err := m.opts.Accounts.CompleteRegistration(ctx, ch, code)
		return verifiedMsg{purpose: ch.Purpose, nickname: nickname, err: err}
	}
}

func (m model) handleAccountResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case emailCheckedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.clearStatus()
		return m, m.form.focusOn(1)

	case loggedInMsg:
		if msg.err != nil {
			m.setError(msg.err)
			if errors.Is(msg.err, auth.ErrTooManyAttempts) {
				return m, m.showReset(m.form.value(i18n.FieldEmail))
			}
			m.form.set(i18n.FieldPassword, "")
			return m, nil
		}
		m.nickname = msg.nickname
		m.showMenu()
		m.setStatus(m.p.Sprintf(i18n.Welcome, msg.nickname))
		return m, nil

	case challengeMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.showVerify(msg.ch)
		m.setStatus(m.p.Sprintf(i18n.VerifyPrompt, msg.ch.Email))
		return m, nil

	case resentMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.form.set(i18n.FieldCode, "")
		m.setStatus(m.p.Sprintf(i18n.CodeResent, m.challenge.Email))
		return m, nil

	case verifiedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if msg.purpose == auth.PurposeReset {
			email := m.challenge.Email
			m.showLogin(email)
			m.setStatus(m.p.Sprintf(i18n.ResetDone))
			return m, m.form.focusOn(1)
		}
		m.nickname = msg.nickname
		m.challenge = nil
		m.showMenu()
		m.setStatus(m.p.Sprintf(i18n.RegisterDone, msg.nickname))
		return m, nil
	}
	return m, nil
}

func (m model) viewAccount() (string, string) {
	var title, help string
	switch m.state {
	case stateLogin:
		title, help = i18n.LoginTitle, i18n.LoginHelp
	case stateRegister:
		title, help = i18n.RegisterTitle, i18n.RegisterHelp
	case stateReset:
		title, help = i18n.ResetTitle, i18n.ResetHelp
	case stateVerify:
		title, help = i18n.VerifyTitle, i18n.VerifyHelp
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.p.Sprintf(title)),
		"",
		m.form.view(m),
	)
	return body, m.p.Sprintf(help)
}
