package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// envelopeMsg carries the outcome of an asynchronous call into the program.
type envelopeMsg struct {
	resp domain.Response
	err  error
}

// callSpinnerModel shows one Pending transaction until its envelope arrives.
type callSpinnerModel struct {
	spinner spinner.Model
	name    string
	id      domain.TransactionID
	started time.Time
	elapsed time.Duration
	wait    tea.Cmd
	result  envelopeMsg
	done    bool
}

func newCallSpinnerModel(name string, pending domain.Response, started time.Time, wait tea.Cmd) callSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return callSpinnerModel{
		spinner: s,
		name:    name,
		id:      pending.TransactionID,
		started: started,
		wait:    wait,
		result:  envelopeMsg{resp: pending},
	}
}

func (m callSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wait)
}

func (m callSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.elapsed = msg.Time.Sub(m.started)
		return m, cmd
	case envelopeMsg:
		m.done = true
		m.result = msg
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m callSpinnerModel) View() string {
	if m.done {
		return ""
	}

	label := fmt.Sprintf("Waiting for %s (transaction %d)", m.name, m.id)
	if m.elapsed >= time.Second {
		label += fmt.Sprintf(" %s", m.elapsed.Truncate(100*time.Millisecond))
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), label)
}

// awaitEnvelope blocks for the envelope of pending. When ctx ends first the
// transaction is cancelled so its handler never fires; if delivery already
// started the envelope is still returned.
func awaitEnvelope(ctx context.Context, pending domain.Response, done <-chan domain.Response, cancel func(domain.TransactionID) bool) (domain.Response, error) {
	select {
	case resp := <-done:
		return resp, nil
	case <-ctx.Done():
	}

	if !cancel(pending.TransactionID) {
		return <-done, nil
	}
	return pending, fmt.Errorf("transaction %d: %w: %w", pending.TransactionID, domain.ErrTransactionCancelled, ctx.Err())
}

// runCallSpinner renders the spinner on output until wait yields the envelope.
func runCallSpinner(ctx context.Context, output io.Writer, name string, pending domain.Response, wait func(context.Context) (domain.Response, error)) (domain.Response, error) {
	waitCmd := func() tea.Msg {
		resp, err := wait(ctx)
		return envelopeMsg{resp: resp, err: err}
	}

	p := tea.NewProgram(
		newCallSpinnerModel(name, pending, time.Now(), waitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
	)

	finalModel, err := p.Run()
	if err != nil {
		return pending, err
	}

	result, ok := finalModel.(callSpinnerModel)
	if !ok {
		return pending, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.result.resp, result.result.err
}
