package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunBoard starts a bubbletea program for board, runs work in a goroutine
// and blocks until the program exits. work receives a send callback for
// RowUpdateMsg values; WorkDoneMsg is sent when it returns.
func RunBoard(out io.Writer, board Board, work func(send func(tea.Msg))) error {
	p := tea.NewProgram(board, tea.WithOutput(out))

	go func() {
		// Let the event loop render the initial frame.
		time.Sleep(50 * time.Millisecond)
		work(p.Send)
		p.Send(WorkDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if b, ok := final.(Board); ok && b.Err() != nil {
		return b.Err()
	}
	return nil
}
