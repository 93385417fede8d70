package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type checkDoneMsg struct {
	err error
}

type checkSpinnerModel struct {
	spinner spinner.Model
	label   string
	check   tea.Cmd
	err     error
	done    bool
}

func newCheckSpinnerModel(label string, check tea.Cmd) checkSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return checkSpinnerModel{
		spinner: s,
		label:   label,
		check:   check,
	}
}

func (m checkSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.check)
}

func (m checkSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case checkDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m checkSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runCheckSpinner(ctx context.Context, output io.Writer, check func(context.Context) error) error {
	checkCmd := func() tea.Msg {
		return checkDoneMsg{err: check(ctx)}
	}

	p := tea.NewProgram(
		newCheckSpinnerModel("Checking plan expirations...", checkCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(checkSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
