package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli"

	"statusync/internal/session"
)

var AuthorizeCmd = cli.Command{
	Name:    "auth",
	Aliases: []string{"authorize"},
	Usage:   "Signs in to the status-syncer API with a Google account",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "sign-out",
			Usage: "Discard the current session instead of signing in",
		},
	},
	Action: Authorize,
}

func Authorize(c *cli.Context) error {
	r, err := newRuntime(c)
	if err != nil {
		return err
	}
	defer r.stop()

	ctx := context.Background()
	if c.Bool("sign-out") {
		if err := r.manager.SignOut(ctx); err != nil {
			return err
		}
		info("Signed out.")
		return nil
	}

	if err := r.manager.SignIn(ctx); err != nil {
		return err
	}
	u, err := r.gateway.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("signed in, but the API rejected the session: %w", err)
	}
	info("Signed in as %s <%s>", u.DisplayName, u.Email)
	if !u.Linked() {
		info("No Slack account linked yet, run %s link-slack to connect one.", AppName)
	}
	return nil
}

type model struct {
	prompt    string
	textInput *textinput.Model
	err       error
}

func initialModel(prompt string) model {
	ti := textinput.New()
	ti.Placeholder = "..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 45
	ti.EchoMode = textinput.EchoPassword

	return model{
		prompt:    prompt,
		textInput: &ti,
		err:       nil,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type errMsg error

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter, tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}

	// We handle errors just like any other message
	case errMsg:
		m.err = msg
		return m, nil
	}

	*m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return fmt.Sprintf(
		"%s\n\n%s",
		m.prompt,
		m.textInput.View(),
	) + "\n"
}

func promptAccessCode(prompt string) session.CodePromptFn {
	return func() (string, error) {
		m := initialModel(prompt)
		err := tea.NewProgram(m).Start()
		return m.textInput.Value(), err
	}
}
