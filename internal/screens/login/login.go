// Package login is the entry screen: sign in, or register with the
// email verification round trip.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/bytetechedu/bytetech/internal/api"
	"github.com/bytetechedu/bytetech/internal/auth"
	"github.com/bytetechedu/bytetech/internal/router"
	"github.com/bytetechedu/bytetech/internal/screen"
	"github.com/bytetechedu/bytetech/internal/screens/home"
	"github.com/bytetechedu/bytetech/internal/store"
	"github.com/bytetechedu/bytetech/internal/ui/components"
	"github.com/bytetechedu/bytetech/internal/ui/layout"
	"github.com/bytetechedu/bytetech/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
	modeVerify
)

// Deps are the services the login flow needs.
type Deps struct {
	Client  *api.Client
	Session *auth.Session
	Store   *store.Store
	Logger  *zap.Logger
}

// LoginScreen collects credentials and establishes the session.
type LoginScreen struct {
	deps Deps

	mode    mode
	inputs  []components.TextInput
	labels  []string
	focused int

	asSensei bool
	busy     bool
	errMsg   string
	infoMsg  string

	// registration state carried into the verify step
	pendingEmail string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen in sign-in mode.
func New(deps Deps) *LoginScreen {
	s := &LoginScreen{deps: deps}
	s.setMode(modeLogin)
	return s
}

func (s *LoginScreen) setMode(m mode) {
	s.mode = m
	s.focused = 0
	s.errMsg = ""
	switch m {
	case modeLogin:
		s.labels = []string{"Email", "Password"}
		s.inputs = []components.TextInput{
			components.NewTextInput("you@example.com", 128),
			components.NewPasswordInput("password", 128),
		}
	case modeRegister:
		s.labels = []string{"Name", "Email", "Password"}
		s.inputs = []components.TextInput{
			components.NewTextInput("display name", 64),
			components.NewTextInput("you@example.com", 128),
			components.NewPasswordInput("min 8 characters", 128),
		}
	case modeVerify:
		s.labels = []string{"Verification code"}
		s.inputs = []components.TextInput{
			components.NewTextInput("code from your email", 16),
		}
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.inputs[0].Focus()
}

func (s *LoginScreen) Title() string {
	switch s.mode {
	case modeRegister:
		return "Register"
	case modeVerify:
		return "Verify Email"
	default:
		return "Sign In"
	}
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
	}
	switch s.mode {
	case modeLogin:
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Register"})
	case modeRegister:
		hints = append(hints,
			layout.KeyHint{Key: "Ctrl+T", Description: "Toggle teacher"},
			layout.KeyHint{Key: "Ctrl+R", Description: "Sign in"},
		)
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	return hints
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		return s.handleAuthResult(msg.Resp, msg.Err)

	case registerDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.setMode(modeVerify)
		s.infoMsg = "We emailed a verification code to " + s.pendingEmail
		return s, s.inputs[0].Focus()

	case verifyDoneMsg:
		return s.handleAuthResult(msg.Resp, msg.Err)

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.focusField(s.focused + 1)
		case "shift+tab", "up":
			return s, s.focusField(s.focused - 1)
		case "enter":
			return s, s.submit()
		case "ctrl+r":
			if s.mode == modeLogin {
				s.setMode(modeRegister)
			} else {
				s.setMode(modeLogin)
			}
			return s, s.inputs[0].Focus()
		case "ctrl+t":
			if s.mode == modeRegister {
				s.asSensei = !s.asSensei
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *LoginScreen) focusField(i int) tea.Cmd {
	n := len(s.inputs)
	i = ((i % n) + n) % n
	s.inputs[s.focused].Blur()
	s.focused = i
	return s.inputs[i].Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	s.errMsg = ""
	switch s.mode {
	case modeLogin:
		req := api.LoginRequest{
			Email:    strings.TrimSpace(s.inputs[0].Value()),
			Password: s.inputs[1].Value(),
		}
		s.busy = true
		return func() tea.Msg {
			resp, err := s.deps.Client.Login(context.Background(), req)
			return loginDoneMsg{Resp: resp, Err: err}
		}

	case modeRegister:
		req := api.RegisterRequest{
			Name:     strings.TrimSpace(s.inputs[0].Value()),
			Email:    strings.TrimSpace(s.inputs[1].Value()),
			Password: s.inputs[2].Value(),
			IsSensei: s.asSensei,
		}
		s.pendingEmail = req.Email
		s.busy = true
		return func() tea.Msg {
			resp, err := s.deps.Client.Register(context.Background(), req)
			return registerDoneMsg{Resp: resp, Err: err}
		}

	case modeVerify:
		code := strings.TrimSpace(s.inputs[0].Value())
		if code == "" {
			s.errMsg = "enter the code from your email"
			return nil
		}
		email := s.pendingEmail
		s.busy = true
		return func() tea.Msg {
			resp, err := s.deps.Client.VerifyRegister(context.Background(), email, code)
			return verifyDoneMsg{Resp: resp, Err: err}
		}
	}
	return nil
}

func (s *LoginScreen) handleAuthResult(resp *api.AuthResponse, err error) (screen.Screen, tea.Cmd) {
	s.busy = false
	if err != nil {
		s.errMsg = err.Error()
		if s.deps.Logger != nil {
			s.deps.Logger.Warn("auth failed", zap.Error(err))
		}
		return s, nil
	}

	user := resp.User
	if err := s.deps.Session.Login(&user, resp.AccessToken); err != nil {
		s.errMsg = "could not persist session: " + err.Error()
		return s, nil
	}
	if s.deps.Logger != nil {
		s.deps.Logger.Info("logged in", zap.String("email", user.Email), zap.Bool("sensei", user.IsSensei))
	}

	next := home.New(home.Deps{
		Client:  s.deps.Client,
		Session: s.deps.Session,
		Store:   s.deps.Store,
		Logger:  s.deps.Logger,
	})
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(60).Render("ByteTechEdu"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(60).Render("learn to build things that matter"))
	b.WriteString("\n\n")

	for i, label := range s.labels {
		b.WriteString(theme.Body.Render(label) + "\n")
		b.WriteString(s.inputs[i].View() + "\n\n")
	}

	if s.mode == modeRegister {
		check := "[ ]"
		if s.asSensei {
			check = "[x]"
		}
		b.WriteString(theme.Body.Render(check+" Register as a teacher") + "\n\n")
	}

	if s.busy {
		b.WriteString(theme.Hint.Render("working...") + "\n")
	}
	if s.infoMsg != "" && s.mode == modeVerify {
		b.WriteString(theme.Hint.Render(s.infoMsg) + "\n")
	}
	if s.errMsg != "" {
		b.WriteString(components.ErrorBanner(s.errMsg, 60) + "\n")
	}

	card := theme.Card.Width(64).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
