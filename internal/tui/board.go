package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// PendingStatus marks rows that have not been processed yet.
const PendingStatus = "pending"

type tickMsg time.Time

// Column defines one column of a Board.
type Column struct {
	Header string
	Width  int
}

type boardRow struct {
	key    string
	fields []string
}

// Board is a bubbletea model rendering one row per work item and a spinner
// footer until every row has left the pending state.
type Board struct {
	title     string
	columns   []Column
	rows      []boardRow
	rowIndex  map[string]int
	statusCol int
	styles    Styles
	tick      int
	done      bool
	err       error
}

// NewBoard creates a board. The column named STATUS, if any, is styled and
// drives the progress counter.
func NewBoard(title string, columns []Column, styles Styles) Board {
	statusCol := -1
	for i, c := range columns {
		if strings.EqualFold(c.Header, "STATUS") {
			statusCol = i
			break
		}
	}
	return Board{
		title:     title,
		columns:   columns,
		rowIndex:  make(map[string]int),
		statusCol: statusCol,
		styles:    styles,
	}
}

// AddRow appends a row. Call before the program starts.
func (b *Board) AddRow(key string, fields ...string) {
	padded := make([]string, len(b.columns))
	copy(padded, fields)
	b.rowIndex[key] = len(b.rows)
	b.rows = append(b.rows, boardRow{key: key, fields: padded})
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies tea.Model.
func (b Board) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies tea.Model.
func (b Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		b.tick++
		if b.done {
			return b, nil
		}
		return b, scheduleTick()

	case RowUpdateMsg:
		b.apply(msg)
		return b, nil

	case WorkDoneMsg:
		b.done = true
		return b, tea.Quit

	case ErrorMsg:
		b.err = msg.Err
		b.done = true
		return b, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			b.done = true
			return b, tea.Quit
		}
	}
	return b, nil
}

func (b *Board) apply(msg RowUpdateMsg) {
	idx, ok := b.rowIndex[msg.Key]
	if !ok {
		return
	}
	row := &b.rows[idx]
	for j, col := range b.columns {
		if val, exists := msg.Fields[col.Header]; exists {
			row.fields[j] = val
		}
	}
}

// View satisfies tea.Model.
func (b Board) View() string {
	if b.done && b.err != nil {
		return fmt.Sprintf("Error: %v\n", b.err)
	}

	widths := make([]int, len(b.columns))
	for i, col := range b.columns {
		widths[i] = max(len(col.Header), col.Width)
	}

	var sb strings.Builder
	if b.title != "" {
		sb.WriteString(b.styles.Header.Render(b.title))
		sb.WriteString("\n\n")
	}

	headers := make([]string, len(b.columns))
	for i, col := range b.columns {
		headers[i] = b.styles.Header.Render(pad(col.Header, widths[i]))
	}
	sb.WriteString(strings.Join(headers, "  "))
	sb.WriteByte('\n')

	for _, row := range b.rows {
		parts := make([]string, len(b.columns))
		for i := range b.columns {
			val := TruncateLeft(row.fields[i], widths[i])
			if i == b.statusCol {
				parts[i] = b.styles.Status(val).Render(pad(val, widths[i]))
			} else {
				parts[i] = pad(val, widths[i])
			}
		}
		sb.WriteString(strings.Join(parts, "  "))
		sb.WriteByte('\n')
	}

	if !b.done {
		processed, total := b.Progress()
		spinner := spinnerFrames[b.tick%len(spinnerFrames)]
		fmt.Fprintf(&sb, "\n%s Inspecting %d/%d...\n", spinner, processed, total)
	}
	return sb.String()
}

// Progress returns how many rows have left the pending state.
func (b Board) Progress() (processed, total int) {
	total = len(b.rows)
	if b.statusCol < 0 {
		return 0, total
	}
	for _, row := range b.rows {
		status := strings.TrimSpace(row.fields[b.statusCol])
		if status != "" && status != PendingStatus {
			processed++
		}
	}
	return processed, total
}

// Done reports whether the board has finished.
func (b Board) Done() bool {
	return b.done
}

// Err returns the fatal error sent with ErrorMsg, if any.
func (b Board) Err() error {
	return b.err
}

func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// TruncateLeft keeps the tail of value, which for paths is the part that
// tells entries apart.
func TruncateLeft(value string, width int) string {
	value = strings.TrimSpace(value)
	if width <= 0 {
		return ""
	}
	r := []rune(value)
	if len(r) <= width {
		return value
	}
	if width <= 3 {
		return string(r[len(r)-width:])
	}
	return "..." + string(r[len(r)-width+3:])
}
