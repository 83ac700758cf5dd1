package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/brainboard/pkg/board"
	"github.com/matzehuels/brainboard/pkg/layer"
	"github.com/matzehuels/brainboard/pkg/selection"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// LayerListModel - Interactive layer browser
// =============================================================================

// LayerListModel is the bubbletea model for browsing and editing a board's
// layers, frontmost first.
type LayerListModel struct {
	ctx   context.Context
	board *board.Board
	sel   *selection.Manager

	Layers []layer.Layer
	Cursor int
	Height int
	Offset int
	Err    error
}

// NewLayerListModel creates a browser over b acting as user.
func NewLayerListModel(ctx context.Context, b *board.Board, user string) LayerListModel {
	m := LayerListModel{
		ctx:    ctx,
		board:  b,
		sel:    selection.NewManager(b, user),
		Height: 15,
	}
	m.refresh()
	return m
}

func (m *LayerListModel) refresh() {
	m.Layers = m.board.Snapshot().Ordered()
	slices.Reverse(m.Layers)
	if m.Cursor >= len(m.Layers) {
		m.Cursor = max(len(m.Layers)-1, 0)
	}
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
}

func (m LayerListModel) Init() tea.Cmd {
	return nil
}

func (m LayerListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.Err = nil
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Layers)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "l":
			m.edit(func(l layer.Layer) error { return m.sel.SetLock(m.ctx, !l.Lock) })
		case "h":
			m.edit(func(l layer.Layer) error { return m.sel.SetHide(m.ctx, !l.Hide) })
		case "f":
			m.edit(func(layer.Layer) error { return m.sel.BringToFront(m.ctx) })
		case "b":
			m.edit(func(layer.Layer) error { return m.sel.SendToBack(m.ctx) })
		case "x":
			m.edit(func(layer.Layer) error { return m.sel.Delete(m.ctx) })
		case "u":
			_, m.Err = m.board.Undo(m.ctx, m.sel.User())
			m.refresh()
		case "r":
			_, m.Err = m.board.Redo(m.ctx, m.sel.User())
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// edit selects the layer under the cursor and applies fn to it.
func (m *LayerListModel) edit(fn func(layer.Layer) error) {
	if len(m.Layers) == 0 {
		return
	}
	l := m.Layers[m.Cursor]
	if err := m.sel.Select(m.ctx, []string{l.ID}, false); err != nil {
		m.Err = err
		return
	}
	m.Err = fn(l)
	m.refresh()
}

func (m LayerListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Board " + m.board.ID()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  l lock  h hide  f front  b back  x delete  u undo  r redo  q quit"))
	b.WriteString("\n\n")

	if len(m.Layers) == 0 {
		b.WriteString(listDimStyle.Render("  no layers"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Layers))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		l := m.Layers[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, l.ID, l.Type.String(), num(l.X) + "," + num(l.Y), layerFlags(l)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Role", "Position", "Flags").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx == m.Cursor {
				return listSelectedStyle
			}
			if idx < len(m.Layers) && (m.Layers[idx].Lock || m.Layers[idx].Hide) {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layers))))
	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(listErrorStyle.Render("  " + m.Err.Error()))
	}
	return b.String()
}

// browseCommand opens the interactive layer browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <board>",
		Short: "Browse and edit a board's layers interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reg, err := c.openRegistry(ctx)
			if err != nil {
				return err
			}
			defer reg.Close()

			b, err := reg.Get(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(NewLayerListModel(ctx, b, cliUser)).Run()
			return err
		},
	}
}
