// Package table is the bubbletea panel showing a grid. It translates keys into grid
// gestures and edit commands and materializes the visible page as the grid's containers.
package table

import (
	"context"
	"fmt"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/pkg/errors"

	nt "grille/entity"
	"grille/grid"
	"grille/message"
	"grille/style"
)

// Todo: handle columns overflow
// Todo: mouse gestures, the grid takes them the same way as keys

const (
	headerHeight = 2
	placeholder  = "+ new row"
)

// Source supplies cell values for display.
type Source interface {
	Value(item nt.Item, col int) nt.Value
}

// Panel handles the grid display and translates input into grid gestures.
type Panel struct {
	grid   *grid.Grid
	source Source
	page   *page
	inbox  *inbox

	offset int // first row shown
	width  int
	height int

	colFmts []colFmt
	table   *table.Table

	ctx    context.Context
	logger nt.Logger
}

type colFmt struct {
	width     int
	fieldName string
	formatter func(nt.Value) string
}

// New creates a panel over g and attaches it as g's container host.
func New(ctx context.Context, g *grid.Grid, source Source, fields []nt.Field, lgr nt.Logger) Panel {

	lgt := table.New()
	style.StyleTable(lgt)

	pnl := Panel{
		grid:   g,
		source: source,
		page:   &page{rows: g.ItemAt},
		inbox:  &inbox{},
		table:  lgt,
		ctx:    ctx,
		logger: lgr,
	}
	pnl.inbox.listen(g)
	pnl = pnl.setColumns(g.Columns(), fields)

	g.SetContainers(pnl.page)
	return pnl
}

func (pnl Panel) Init() tea.Cmd {
	return nil
}

func (pnl Panel) Update(msg tea.Msg) (Panel, tea.Cmd) {

	switch msg := msg.(type) {

	case SizeMsg:
		pnl.width = msg.Width
		pnl.height = msg.Height

		if !pnl.grid.CurrentCell().Valid() && pnl.grid.RowCount() > 0 && len(pnl.colFmts) > 0 {
			_, err := pnl.grid.SetCurrentCell(grid.Cell{Item: pnl.grid.ItemAt(0), Column: 0})
			if err != nil {
				pnl.inbox.post(message.ErrorMsg{Err: err})
			}
		}
		pnl.page.generation = 0 // size changed, always rebuild
		return pnl, pnl.settle()

	case realizeMsg:
		if !pnl.page.pending {
			return pnl, nil
		}
		pnl.page.pending = false
		pnl.realize()
		return pnl, pnl.inbox.drain()

	case tea.KeyPressMsg:
		pnl = pnl.handleKey(msg)
		return pnl, pnl.settle()
	}

	return pnl, nil
}

// View renders the visible page.
func (pnl Panel) View() tea.View {
	return tea.NewView(pnl.Render())
}

// Render renders the visible page as a string.
func (pnl Panel) Render() string {

	g := pnl.grid
	first, count := pnl.visible()

	pnl.table.ClearRows()
	for idx := first; idx < first+count; idx++ {
		pnl.table.Row(pnl.row(idx)...)
	}
	pnl.table.StyleFunc(style.CellStyler(func(row, col int) style.Flags {
		return pnl.flags(first+row, col)
	}))

	if g.RowCount() == 0 {
		return pnl.table.String() + "\n" + style.MutedStyle.Render("no rows")
	}
	return pnl.table.String()
}

// PageSize returns the number of rows that fit on panel
func (pnl Panel) PageSize() int {
	if pnl.height < headerHeight {
		return 0
	}
	return pnl.height - headerHeight
}

// Offset returns the first row shown.
func (pnl Panel) Offset() int {
	return pnl.offset
}

// unexported

// settle keeps the current row in view and, once per burst of input, schedules the
// page to be realized again when the scroll position or the collection moved.
func (pnl *Panel) settle() tea.Cmd {

	pageSize := pnl.PageSize()
	if cur := pnl.grid.CurrentCell(); cur.Valid() && pageSize > 0 {
		if cur.Row < pnl.offset {
			pnl.offset = cur.Row
		} else if cur.Row >= pnl.offset+pageSize {
			pnl.offset = cur.Row - pageSize + 1
		}
	}
	pnl.offset = max(0, min(pnl.offset, pnl.grid.RowCount()-pageSize))

	cmd := pnl.inbox.drain()

	pg := pnl.page
	stale := pg.offset != pnl.offset || pg.generation != pnl.grid.Generation()
	if !stale || pg.pending {
		return cmd
	}

	pg.pending = true
	return tea.Batch(cmd, func() tea.Msg { return realizeMsg{} })
}

func (pnl Panel) realize() {

	g := pnl.grid
	pnl.page.realize(pnl.offset, pnl.PageSize(), g.RowCount(), g.Generation())
	g.OnContainersRegenerated()
}

func (pnl Panel) visible() (first, count int) {

	first = pnl.offset
	count = min(pnl.PageSize(), pnl.grid.RowCount()-first)
	return first, max(count, 0)
}

// flags reads a cell's paint state from its box, falling back to the grid for rows
// whose box is not realized yet.
func (pnl Panel) flags(idx, col int) (fl style.Flags) {

	g := pnl.grid
	cur := g.CurrentCell()
	fl.Current = cur.Valid() && cur.Row == idx && cur.Column == col

	if bx := pnl.page.boxAt(idx); bx != nil {
		fl.Selected = bx.cellSelected(col)
		fl.Editing = bx.editing == col
	} else {
		fl.Selected = g.IsCellSelected(idx, col)
		ec := g.EditingCell()
		fl.Editing = ec.Valid() && ec.Row == idx && ec.Column == col
	}

	fl.Invalid = fl.Editing && g.HasCellValidationError()
	return
}

func (pnl Panel) row(idx int) []string {

	g := pnl.grid
	item := g.ItemAt(idx)
	row := make([]string, len(pnl.colFmts))

	if nt.IsPlaceholder(item) {
		if len(row) > 0 {
			row[0] = style.MutedStyle.Render(placeholder)
		}
		return row
	}

	ec := g.EditingCell()
	for col, colFmt := range pnl.colFmts {
		if ec.Valid() && ec.Row == idx && ec.Column == col {
			row[col] = truncate(g.EditValue().String()+"▏", colFmt.width)
			continue
		}
		formatted := colFmt.formatter(pnl.source.Value(item, col))
		row[col] = truncate(formatted, colFmt.width)
	}
	return row
}

func (pnl Panel) setColumns(columns []nt.Column, fields []nt.Field) Panel {

	types := map[string]string{}
	for _, field := range fields {
		types[field.Name] = field.Type
	}

	colFmts := make([]colFmt, len(columns))
	headers := make([]string, len(columns))
	for i, col := range columns {
		colFmts[i] = colFmt{
			width:     max(col.Width, 1),
			fieldName: col.Field,
			formatter: makeFormatter(types[col.Field], col.Format),
		}
		headers[i] = fmt.Sprintf("%-*s", colFmts[i].width+1, col.Field)
	}

	pnl.table.Headers(headers...)
	pnl.colFmts = colFmts
	return pnl
}

func (pnl Panel) report(err error) {

	if err == nil {
		return
	}
	if errors.Cause(err) != grid.ErrInvalidOperation {
		pnl.logger.Error(pnl.ctx, "grid command failed", err)
	}
	pnl.inbox.post(message.ErrorMsg{Err: err})
}

// help

func makeFormatter(fieldType, format string) func(nt.Value) string {
	if format != "" && fieldType == "TIMESTAMP" {
		return func(val nt.Value) string {
			t, err := val.Time()
			if err == nil {
				return t.Format(format)
			}
			return val.String()
		}
	}

	return func(v nt.Value) string {
		return v.String()
	}
}

func truncate(in string, width int) string {

	if utf8.RuneCountInString(in) <= width {
		return in
	}

	truncated := string([]rune(in)[:width-1])
	ellipsis := style.MutedStyle.Render("…")
	return truncated + ellipsis
}
