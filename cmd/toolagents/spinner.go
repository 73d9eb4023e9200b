package main

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tailored-agentic-units/toolagents/kernel"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type statusMsg string

type doneMsg struct {
	result *kernel.Result
	err    error
}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	status  string
	cancel  context.CancelFunc
	done    *doneMsg
}

func newSpinnerModel(label string, cancel context.CancelFunc) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
		status:  "starting",
		cancel:  cancel,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case doneMsg:
		m.done = &msg
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.cancel()
			m.done = &doneMsg{err: context.Canceled}
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done != nil {
		return ""
	}
	return m.spinner.View() + " " + labelStyle.Render(m.label) + " " + statusStyle.Render(m.status) + "\n"
}

// runWithSpinner runs exec while a spinner shows the latest status it
// reports. Ctrl+C cancels the run.
func runWithSpinner(ctx context.Context, out io.Writer, label string, exec func(context.Context, func(string)) (*kernel.Result, error)) (*kernel.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newSpinnerModel(label, cancel), tea.WithOutput(out))

	go func() {
		result, err := exec(ctx, func(s string) { p.Send(statusMsg(s)) })
		p.Send(doneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	done := final.(spinnerModel).done
	if done == nil {
		return nil, context.Canceled
	}
	return done.result, done.err
}
