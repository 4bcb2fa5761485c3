package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/services"
	"github.com/kamal-hamza/tokenlint/pkg/ui"
)

var exploreCmd = &cobra.Command{
	Use:   "explore [chain]",
	Short: "Browse the registry with live validation status",
	Long: `Open an interactive table of every token folder. Each row shows whether the
folder passes all checks; the footer shows the selected folder's violation.

Controls:
- k / ↑ : Move Up
- j / ↓ : Move Down
- /     : Filter
- c     : Copy address
- ?     : Toggle help
- q     : Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplore,
}

// exploreRow pairs a folder with its validation result
type exploreRow struct {
	Entry  domain.TokenEntry
	Result domain.FolderResult
}

func runExplore(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	chain := ""
	if len(args) == 1 {
		chain = args[0]
	}

	rows, err := buildExploreRows(ctx, chain)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println(ui.FormatWarning("No tokens found."))
		return nil
	}

	p := tea.NewProgram(newExploreModel(rows), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func buildExploreRows(ctx context.Context, chain string) ([]exploreRow, error) {
	resp, err := listService.Execute(ctx, services.ListRequest{Chain: chain})
	if err != nil {
		return nil, err
	}

	rows := make([]exploreRow, 0, resp.Total)
	for _, entry := range resp.Tokens {
		result, err := validateService.Check(ctx, entry.Key)
		if err != nil {
			return nil, err
		}
		rows = append(rows, exploreRow{Entry: entry, Result: result})
	}
	return rows, nil
}

// --- TUI Model ---

type exploreKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Copy   key.Binding
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

func (k exploreKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Search, k.Copy, k.Help, k.Quit}
}

func (k exploreKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Search, k.Escape, k.Copy},
		{k.Help, k.Quit},
	}
}

var exploreKeys = exploreKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy address"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type copiedMsg struct {
	address string
	err     error
}

type exploreModel struct {
	table     table.Model
	filter    textinput.Model
	help      help.Model
	keys      exploreKeyMap
	rows      []exploreRow
	visible   []exploreRow
	searching bool
	status    string
	width     int
}

func newExploreModel(rows []exploreRow) exploreModel {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Chain", Width: 12},
		{Title: "Symbol", Width: 10},
		{Title: "Name", Width: 24},
		{Title: "Address", Width: 42},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	// --- Styles using Safe Terminal Colors ---
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ui.ColorMuted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ui.ColorDefault).
		Background(ui.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	ti := textinput.New()
	ti.Placeholder = "symbol, name or address"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	m := exploreModel{
		table:  t,
		filter: ti,
		help:   help.New(),
		keys:   exploreKeys,
		rows:   rows,
	}
	m.applyFilter("")
	return m
}

func (m *exploreModel) applyFilter(query string) {
	query = strings.TrimSpace(query)

	m.visible = nil
	for _, r := range m.rows {
		if r.Entry.Matches(query) {
			m.visible = append(m.visible, r)
		}
	}

	tableRows := make([]table.Row, 0, len(m.visible))
	for _, r := range m.visible {
		tableRows = append(tableRows, table.Row{
			statusMark(r.Result.Passed()),
			r.Entry.Key.Chain,
			orDash(r.Entry.Symbol),
			ui.Truncate(orDash(r.Entry.Name), 24),
			r.Entry.Key.Token,
		})
	}
	m.table.SetRows(tableRows)
	m.table.SetCursor(0)
}

// statusMark is the unstyled pass/fail icon. The table measures cells by
// their raw width, so escape sequences would be cut off.
func statusMark(passed bool) string {
	if passed {
		return ui.IconSuccess
	}
	return ui.IconError
}

// selected returns the row under the cursor
func (m exploreModel) selected() (exploreRow, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return exploreRow{}, false
	}
	return m.visible[idx], true
}

func (m exploreModel) failing() int {
	n := 0
	for _, r := range m.rows {
		if !r.Result.Passed() {
			n++
		}
	}
	return n
}

func (m exploreModel) Init() tea.Cmd { return nil }

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Clipboard access failed"
		} else {
			m.status = "Copied " + msg.address
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.status = ""
			cmd := m.filter.Focus()
			return m, cmd

		case key.Matches(msg, m.keys.Escape):
			m.filter.SetValue("")
			m.applyFilter("")
			return m, nil

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.Copy):
			row, ok := m.selected()
			if !ok {
				return m, nil
			}
			address := row.Entry.Key.Token
			return m, func() tea.Msg {
				return copiedMsg{address: address, err: clipboard.WriteAll(address)}
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m exploreModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.filter.Blur()
		return m, nil

	case tea.KeyEsc:
		m.searching = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter("")
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter(m.filter.Value())
	return m, cmd
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(ui.StyleTitle.Render(" Token Registry "))
	b.WriteString("  ")
	b.WriteString(ui.FormatMuted(fmt.Sprintf("%d tokens, %d failing", len(m.rows), m.failing())))
	b.WriteString("\n\n")

	if m.searching || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(ui.FormatWarning("No tokens match the filter"))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n\n")
		b.WriteString(m.footer())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(ui.FormatMuted(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// footer describes the selected folder's validation result
func (m exploreModel) footer() string {
	row, ok := m.selected()
	if !ok {
		return ""
	}
	if row.Result.Passed() {
		return ui.FormatSuccess("All checks passed")
	}
	msg := row.Result.Violation.Message
	if m.width > 4 {
		msg = ui.Truncate(msg, m.width-4)
	}
	return ui.FormatError(msg)
}
