package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mholtz/tote/internal/session"
	"github.com/mholtz/tote/internal/shopapi"
)

// loginState holds the login form.
type loginState struct {
	active   bool
	busy     bool
	errText  string
	inputs   [2]textinput.Model // email, password
	focusIdx int
}

func newLoginState(email string) loginState {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.Prompt = "> "
	emailInput.CharLimit = 128
	emailInput.SetValue(email)

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.Prompt = "> "
	passwordInput.CharLimit = 128
	passwordInput.EchoMode = textinput.EchoPassword

	return loginState{inputs: [2]textinput.Model{emailInput, passwordInput}}
}

func (l *loginState) open() {
	l.active = true
	l.busy = false
	l.errText = ""
	l.inputs[1].SetValue("")
	l.focusIdx = 0
	l.inputs[0].Focus()
	l.inputs[1].Blur()
}

func (l *loginState) close() {
	l.active = false
	l.inputs[0].Blur()
	l.inputs[1].Blur()
}

func (l *loginState) focusNext(delta int) {
	l.inputs[l.focusIdx].Blur()
	l.focusIdx = (l.focusIdx + delta + len(l.inputs)) % len(l.inputs)
	l.inputs[l.focusIdx].Focus()
}

func (l *loginState) email() string {
	return strings.TrimSpace(l.inputs[0].Value())
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.busy {
		// A login attempt is in flight; only allow bailing out.
		if msg.String() == "esc" {
			m.login.close()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.login.close()
		return m, nil

	case "tab", "down":
		m.login.focusNext(1)
		return m, nil

	case "shift+tab", "up":
		m.login.focusNext(-1)
		return m, nil

	case "enter":
		if m.login.focusIdx == 0 {
			m.login.focusNext(1)
			return m, nil
		}
		email := m.login.email()
		password := m.login.inputs[1].Value()
		if email == "" || password == "" {
			m.login.errText = "Email and password are required"
			return m, nil
		}
		m.login.busy = true
		m.login.errText = ""
		return m, loginCmd(m.ctx, m.client, m.session, email, password)
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focusIdx], cmd = m.login.inputs[m.login.focusIdx].Update(msg)
	return m, cmd
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.err != nil {
		m.login.errText = msg.err.Error()
		return m, nil
	}
	m.login.close()
	m.notice = "Signed in as " + msg.result.Identity.Name
	m.savePrefs()
	return m, nil
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(styles.Logo.Render("  tote"))
	b.WriteString(styles.MutedText.Render("  sign in to sync your cart and favorites"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.login.inputs[0].View() + "\n")
	b.WriteString("  " + m.login.inputs[1].View() + "\n\n")

	switch {
	case m.login.busy:
		b.WriteString(styles.InfoText.Render("  Signing in..."))
	case m.login.errText != "":
		b.WriteString(styles.DangerText.Render("  " + m.login.errText))
	default:
		b.WriteString(styles.FaintText.Render("  enter to submit, esc to cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

type loginResultMsg struct {
	result shopapi.LoginResult
	err    error
}

func loginCmd(ctx context.Context, client *shopapi.Client, sess *session.Session, email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		client.SetToken(result.Token)
		// Notifies the session's subscribers, which kicks off the one-shot
		// cart and wishlist reconciliation.
		sess.Login(result.Token, result.Identity)
		return loginResultMsg{result: result}
	}
}
