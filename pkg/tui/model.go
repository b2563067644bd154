// Package tui is the terminal front-end of the price checker.
//
// All form mutations happen on the Bubble Tea update loop; only the request
// itself runs inside a tea.Cmd.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/geniass/price-tracker/pkg/checker"
)

// checkSettledMsg carries the outcome of the request started by a check.
type checkSettledMsg struct {
	result checker.Result
	err    error
}

// noticeQueue holds blocking notifications until the user dismisses them.
type noticeQueue struct {
	messages []string
}

func (q *noticeQueue) Notify(message string) {
	q.messages = append(q.messages, message)
}

func (q *noticeQueue) Current() (string, bool) {
	if len(q.messages) == 0 {
		return "", false
	}
	return q.messages[0], true
}

func (q *noticeQueue) Dismiss() {
	if len(q.messages) > 0 {
		q.messages = q.messages[1:]
	}
}

type Model struct {
	ctx     context.Context
	fetcher checker.Fetcher
	form    *checker.Form
	notices *noticeQueue

	input   textinput.Model
	spinner spinner.Model
	styles  Styles
	width   int
}

func New(ctx context.Context, fetcher checker.Fetcher) Model {
	notices := &noticeQueue{}

	ti := textinput.New()
	ti.Placeholder = "Enter product URL"
	ti.Prompt = "> "
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	return Model{
		ctx:     ctx,
		fetcher: fetcher,
		form:    checker.NewForm(fetcher, notices),
		notices: notices,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:  DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 4; w > 10 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		// a notification blocks everything else until it is dismissed
		if _, ok := m.notices.Current(); ok {
			switch msg.Type {
			case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
				m.notices.Dismiss()
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.check()
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.form.SetInput(m.input.Value())
		return m, cmd

	case checkSettledMsg:
		m.form.Settle(msg.result, msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.form.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// check is the "Check Price" button. While loading it does nothing.
func (m Model) check() (tea.Model, tea.Cmd) {
	productURL, err := m.form.Begin()
	if err != nil {
		return m, nil
	}
	return m, tea.Batch(m.spinner.Tick, m.fetchPrice(productURL))
}

func (m Model) fetchPrice(productURL string) tea.Cmd {
	fetcher, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		res, err := fetcher.FetchPrice(ctx, productURL)
		return checkSettledMsg{result: res, err: err}
	}
}

func (m Model) View() string {
	s := m.form.Snapshot()

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("💰 Price Tracker"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Tagline.Render("Track product prices in real-time"))
	sb.WriteString("\n\n")

	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if s.Loading {
		sb.WriteString(m.styles.ButtonDisabled.Render(m.spinner.View() + " Checking..."))
	} else {
		sb.WriteString(m.styles.Button.Render("Check Price"))
	}
	sb.WriteString("\n")

	if s.HasPrice {
		sb.WriteString(m.styles.Price.Render("💵 Price: " + s.Price))
		sb.WriteString("\n")
	}

	if notice, ok := m.notices.Current(); ok {
		sb.WriteString("\n")
		sb.WriteString(m.styles.noticeStyle(notice).Render(notice + "\n\n" + m.styles.Help.Render("enter to dismiss")))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.Footer.Render("Made with ❤️ using Go"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("enter check price • esc quit"))
	sb.WriteString("\n")

	return sb.String()
}

// Run starts the terminal UI and blocks until the user quits.
func Run(ctx context.Context, fetcher checker.Fetcher) error {
	p := tea.NewProgram(New(ctx, fetcher), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
