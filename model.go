package grille

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/pkg/errors"

	"grille/edible"
	nt "grille/entity"
	"grille/grid"
	"grille/message"
	"grille/table"
)

const (
	footerHeight = 2
)

// Model is the bubbletea model for the table editor.
type Model struct {
	Store       Store
	grid        *grid.Grid
	panel       table.Panel
	status      status
	errorString string

	ctx    context.Context
	logger nt.Logger

	Width  int
	Height int
}

// NewModel creates a new bt model.
func NewModel(ctx context.Context, cfg *Config, store Store, lgr nt.Logger) (model Model, err error) {

	columns := displayColumns(cfg, store)
	if len(columns) == 0 {
		err = errors.Errorf("no columns to show from %s", store.Name())
		return
	}

	coll, err := store.Collection(columns, edible.WithPlaceholder(cfg.Placeholder))
	if err != nil {
		return
	}

	g := grid.New(coll, columns, grid.WithConfig(cfg.Grid), grid.WithLogger(ctx, lgr))

	model = Model{
		Store:  store,
		grid:   g,
		panel:  table.New(ctx, g, coll, store.Fields(), lgr),
		status: status{rows: g.RowCount()},
		ctx:    ctx,
		logger: lgr,
	}
	model.status.current = g.CurrentCell()
	return
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {

	switch msg := msg.(type) {

	case message.ErrorMsg:
		m.logger.Info(m.ctx, "error msg", "error", msg.Err.Error())
		m.errorString = msg.Err.Error()
		return m, nil

	case message.SelectionMsg:
		m.status.selection = msg
		return m, nil

	case message.CurrentMsg:
		m.status.current = msg.Current
		m.status.rows = m.grid.RowCount()
		return m, nil

	case message.EditMsg:
		m.status.edit = msg
		return m, nil

	case message.RowEndedMsg:
		m.status.saved = msg.Action.String() + " " + msg.Id
		m.status.edit = message.EditMsg{State: m.grid.EditState()}
		m.status.rows = m.grid.RowCount()
		return m, nil

	case tea.KeyPressMsg:
		if m.errorString != "" {
			m.errorString = ""
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if !m.grid.IsEditing() {
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(table.SizeMsg{
			Width:  msg.Width,
			Height: msg.Height - footerHeight,
		})
		return m, cmd
	}

	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	if m.Width == 0 {
		return tea.NewView("Loading...")
	}

	screenLayer := lipgloss.NewLayer("screen", m.panel.Render())

	footerContent := RenderFooter(m.status, m.currentColumn(), m.Store.Name(), m.Width)
	if m.errorString != "" {
		footerContent = m.errorString
	}
	footerLayer := lipgloss.NewLayer("footer", footerContent).Y(m.Height - footerHeight)

	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(screenLayer)
	canvas.Compose(footerLayer)

	view := tea.NewView(canvas)
	view.AltScreen = true
	return view
}

// unexported

func (m Model) currentColumn() string {

	col := m.status.current.Column
	columns := m.grid.Columns()
	if col < 0 || col >= len(columns) {
		return ""
	}
	return columns[col].Field
}
