package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/tatianab/napele/internal/auth"
	"github.com/tatianab/napele/internal/engine"
	"github.com/tatianab/napele/internal/i18n"
	"github.com/tatianab/napele/internal/models"
	"github.com/tatianab/napele/internal/story"
)

type fakeAccounts struct {
	known    map[string]string
	password string
	failures int
}

func (f *fakeAccounts) BeginRegistration(ctx context.Context, r auth.Registration) (*auth.Challenge, error) {
	return &auth.Challenge{Purpose: auth.PurposeRegister, Email: r.Email}, nil
}

func (f *fakeAccounts) CompleteRegistration(ctx context.Context, ch *auth.Challenge, code string) (string, error) {
	return "nova", nil
}

func (f *fakeAccounts) Resend(ctx context.Context, ch *auth.Challenge) error { return nil }

func (f *fakeAccounts) CheckEmail(ctx context.Context, email string) error {
	if _, ok := f.known[email]; !ok {
		return auth.ErrUnknownEmail
	}
	return nil
}

func (f *fakeAccounts) Login(ctx context.Context, email, password string) (string, error) {
	if err := f.CheckEmail(ctx, email); err != nil {
		return "", err
	}
	if password != f.password {
		f.failures++
		if f.failures >= 3 {
			return "", &auth.AttemptsError{Used: f.failures, Err: auth.ErrTooManyAttempts}
		}
		return "", &auth.AttemptsError{Used: f.failures, Remaining: 3 - f.failures, Err: auth.ErrBadPassword}
	}
	return f.known[email], nil
}

func (f *fakeAccounts) BeginReset(ctx context.Context, email, newPassword, confirm string) (*auth.Challenge, error) {
	return &auth.Challenge{Purpose: auth.PurposeReset, Email: email}, nil
}

func (f *fakeAccounts) CompleteReset(ctx context.Context, ch *auth.Challenge, code string) error {
	return nil
}

func (f *fakeAccounts) EmailDomains() []string { return auth.DefaultEmailDomains }

type fakeNarrator struct {
	text string
	err  error
	got  engine.Outcome
}

func (f *fakeNarrator) Reflect(ctx context.Context, storyTitle string, out engine.Outcome, profile engine.Profile) (string, error) {
	f.got = out
	return f.text, f.err
}

func newTestModel(t *testing.T, narrator Reflector) model {
	t.Helper()
	old := models.SaveDir
	models.SaveDir = t.TempDir()
	t.Cleanup(func() { models.SaveDir = old })

	g, err := story.Elias()
	require.NoError(t, err)
	opts := Options{
		Accounts: &fakeAccounts{known: map[string]string{"elias@gmail.com": "elias"}, password: "123456"},
		Story:    g,
		StoryID:  story.EliasID,
		Language: language.MustParse("pt-BR"),
	}
	if narrator != nil {
		opts.Narrator = narrator
	}
	return NewModel(opts)
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys in order and returns the model and the last command.
func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(model)
	}
	return m, cmd
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(model)
}

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	return next.(model)
}

func loggedIn(t *testing.T, narrator Reflector) model {
	t.Helper()
	m := newTestModel(t, narrator)
	m.nickname = "elias"
	m.showMenu()
	return m
}

func TestLogin(t *testing.T) {
	m := newTestModel(t, nil)
	require.Equal(t, stateLogin, m.state)

	m = typeText(t, m, "ninguem@gmail.com")
	m, cmd := press(t, m, "enter")
	assert.True(t, m.busy)
	m = deliver(t, m, cmd)
	assert.False(t, m.busy)
	assert.Equal(t, "Email não cadastrado.", m.status)
	assert.Equal(t, i18n.FieldEmail, m.form.focused())

	m.form.set(i18n.FieldEmail, "elias@gmail.com")
	m, cmd = press(t, m, "enter")
	m = deliver(t, m, cmd)
	assert.Equal(t, i18n.FieldPassword, m.form.focused())

	m = typeText(t, m, "123456")
	m, cmd = press(t, m, "enter")
	m = deliver(t, m, cmd)
	assert.Equal(t, stateMenu, m.state)
	assert.Equal(t, "elias", m.nickname)
	assert.Equal(t, "Olá, elias!", m.status)
}

func TestLoginTooManyAttempts(t *testing.T) {
	m := newTestModel(t, nil)
	m.form.set(i18n.FieldEmail, "elias@gmail.com")
	m.form.focusOn(1)

	for i := 1; i <= 2; i++ {
		m = typeText(t, m, "999999")
		var cmd tea.Cmd
		m, cmd = press(t, m, "enter")
		m = deliver(t, m, cmd)
		assert.Equal(t, stateLogin, m.state)
		assert.Contains(t, m.status, "Tentativas restantes")
		assert.Empty(t, m.form.value(i18n.FieldPassword))
	}

	m = typeText(t, m, "999999")
	m, cmd := press(t, m, "enter")
	m = deliver(t, m, cmd)
	assert.Equal(t, stateReset, m.state)
	assert.Equal(t, "elias@gmail.com", m.form.value(i18n.FieldEmail))
	assert.Equal(t, i18n.FieldNewPassword, m.form.focused())
	assert.True(t, m.statusErr)
}

func TestResetFlow(t *testing.T) {
	m := newTestModel(t, nil)
	m.form.set(i18n.FieldEmail, "elias@gmail.com")
	m, _ = press(t, m, "ctrl+f")
	require.Equal(t, stateReset, m.state)

	m = typeText(t, m, "abc")
	m, _ = press(t, m, "enter")
	assert.Equal(t, "A senha deve ter exatamente 6 caracteres, sem letras nem espaços.", m.status)

	m.form.set(i18n.FieldNewPassword, "654321")
	m, _ = press(t, m, "enter")
	assert.Equal(t, i18n.FieldConfirm, m.form.focused())
	m = typeText(t, m, "654321")
	m, cmd := press(t, m, "enter")
	m = deliver(t, m, cmd)
	require.Equal(t, stateVerify, m.state)

	m = typeText(t, m, "12")
	m, _ = press(t, m, "enter")
	assert.Equal(t, "O código deve ter 6 dígitos.", m.status)

	m = typeText(t, m, "3456")
	m, cmd = press(t, m, "enter")
	m = deliver(t, m, cmd)
	assert.Equal(t, stateLogin, m.state)
	assert.Equal(t, "elias@gmail.com", m.form.value(i18n.FieldEmail))
	assert.Equal(t, "Senha redefinida. Entre com a nova senha.", m.status)
}

func TestShowPassword(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = press(t, m, "ctrl+s")
	assert.Equal(t, textinput.EchoNormal, m.form.fields[1].input.EchoMode)
	assert.Equal(t, textinput.EchoNormal, m.form.fields[0].input.EchoMode)

	m, _ = press(t, m, "ctrl+s")
	assert.Equal(t, textinput.EchoPassword, m.form.fields[1].input.EchoMode)
	assert.Equal(t, textinput.EchoNormal, m.form.fields[0].input.EchoMode)
}

func TestMenuStoriesInDevelopment(t *testing.T) {
	m := loggedIn(t, nil)
	m, _ = press(t, m, "down", "enter")
	assert.Equal(t, stateMenu, m.state)
	assert.Equal(t, "A Jornada da Dra. Lívia está em desenvolvimento.", m.status)

	m, _ = press(t, m, "down", "enter")
	assert.Equal(t, "Desigualdade Social está em desenvolvimento.", m.status)

	m, _ = press(t, m, "down", "enter")
	assert.Equal(t, statePlaying, m.state)
}

func TestPlayThroughToProfile(t *testing.T) {
	m := loggedIn(t, nil)
	m, _ = press(t, m, "enter")
	require.Equal(t, statePlaying, m.state)

	m, _ = press(t, m, "enter")
	assert.Equal(t, "Por favor, selecione uma opção antes de prosseguir.", m.status)
	assert.Empty(t, m.session.Path())

	m, _ = press(t, m, "b")
	assert.Equal(t, "Você já está no início da história.", m.status)

	m, _ = press(t, m, "1", "enter")
	assert.Equal(t, []string{"1"}, m.session.Path())
	assert.Empty(t, m.status)
	assert.Equal(t, -1, m.cursor, "selection resets on each segment")

	m, _ = press(t, m, "down", "enter", "down", "enter")
	require.Equal(t, stateOutcome, m.state)
	assert.Equal(t, "1.1.1", m.outcome.Key)
	assert.Equal(t, engine.ProfileNeutralObserver, m.profile.Key)

	m, _ = press(t, m, "enter")
	assert.Equal(t, stateReflection, m.state)
	assert.Contains(t, m.viewport.View(), "Reflexão")

	m, _ = press(t, m, "enter")
	require.Equal(t, stateProfile, m.state)
	view := m.View()
	assert.Contains(t, view, "Justiça")
	assert.Contains(t, view, "-8")
	assert.Contains(t, view, "+12")
	assert.Contains(t, view, "Observador Neutro")

	saved, err := models.LoadProgress("elias", story.EliasID)
	require.NoError(t, err)
	assert.True(t, saved.Completed)
	assert.Equal(t, "1.1.1", saved.Outcome)
	assert.Equal(t, string(engine.ProfileNeutralObserver), saved.Profile)

	m, _ = press(t, m, "r")
	assert.Equal(t, statePlaying, m.state)
	assert.Empty(t, m.session.Path())
	assert.True(t, m.session.PlayerAttributes().IsZero())
}

func TestGoBackFromOutcome(t *testing.T) {
	m := loggedIn(t, nil)
	m, _ = press(t, m, "enter", "3", "enter", "3", "enter", "3", "enter")
	require.Equal(t, stateOutcome, m.state)
	assert.Equal(t, "3.3.3", m.outcome.Key)

	m, _ = press(t, m, "b")
	assert.Equal(t, statePlaying, m.state)
	assert.Equal(t, []string{"3", "3.3"}, m.session.Path())
	assert.True(t, m.session.PlayerAttributes().IsZero())
}

func TestProgressResumes(t *testing.T) {
	m := loggedIn(t, nil)
	m, _ = press(t, m, "enter", "2", "enter", "1", "enter")
	require.Equal(t, []string{"2", "2.1"}, m.session.Path())

	m, _ = press(t, m, "esc")
	require.Equal(t, stateMenu, m.state)
	assert.Contains(t, m.View(), "(continuar)")

	m, _ = press(t, m, "enter")
	assert.Equal(t, statePlaying, m.state)
	assert.Equal(t, []string{"2", "2.1"}, m.session.Path())
	seg, ok := m.session.CurrentSegment()
	require.True(t, ok)
	assert.Equal(t, "🔎 Enviar investigadores para reabrirem o caso", seg.Title)
}

func TestCorruptProgressRestarts(t *testing.T) {
	m := loggedIn(t, nil)
	p := models.Progress{Nickname: "elias", StoryID: story.EliasID, Path: []string{"1", "9.9"}}
	require.NoError(t, p.Save())
	m.showMenu()

	m, _ = press(t, m, "enter")
	assert.Equal(t, statePlaying, m.state)
	assert.Empty(t, m.session.Path())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "reiniciada")
}

func TestPersonalReflection(t *testing.T) {
	n := &fakeNarrator{text: "Você ouviu Elias?"}
	m := loggedIn(t, n)
	m, _ = press(t, m, "enter", "1", "enter", "1", "enter", "3")
	m, cmd := press(t, m, "enter")
	require.Equal(t, stateOutcome, m.state)
	require.True(t, m.reflecting)

	m = deliver(t, m, cmd)
	assert.Equal(t, "1.1.3", n.got.Key)
	assert.False(t, m.reflecting)

	m, _ = press(t, m, "enter")
	assert.Contains(t, m.viewport.View(), "Você ouviu Elias?")
}

func TestPersonalReflectionFailure(t *testing.T) {
	n := &fakeNarrator{err: errors.New("quota")}
	m := loggedIn(t, n)
	m, _ = press(t, m, "enter", "1", "enter", "1", "enter", "1")
	m, cmd := press(t, m, "enter")
	m = deliver(t, m, cmd)
	m, _ = press(t, m, "enter")
	assert.Equal(t, stateReflection, m.state)
	assert.Contains(t, m.viewport.View(), "Não foi possível gerar")
}

func TestStaleReflectionIgnored(t *testing.T) {
	m := loggedIn(t, nil)
	m, _ = press(t, m, "enter", "1", "enter", "1", "enter", "1", "enter")
	next, _ := m.Update(reflectionMsg{key: "3.3.3", text: "outra"})
	m = next.(model)
	assert.Empty(t, m.reflection)
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		v     int
		cells int
	}{
		{0, 0},
		{5, 5},
		{-8, 8},
		{22, 22},
		{40, 22},
		{-100, 22},
	}
	for _, tc := range tests {
		got := strings.Count(renderBar(tc.v), "█")
		if got != tc.cells {
			t.Errorf("renderBar(%d) has %d cells, want %d", tc.v, got, tc.cells)
		}
	}
}

func TestEnglishText(t *testing.T) {
	m := loggedIn(t, nil)
	m.p = i18n.Printer(language.English)
	m, _ = press(t, m, "enter", "enter")
	assert.Equal(t, "Please select an option before continuing.", m.status)
}
