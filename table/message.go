package table

import (
	tea "charm.land/bubbletea/v2"

	"grille/grid"
	"grille/message"
)

type TableMsg interface {
	isTableMsg()
}

func (SizeMsg) isTableMsg()    {}
func (realizeMsg) isTableMsg() {}

// SizeMsg carries the panel size computed by the model's layout.
type SizeMsg struct {
	Width  int
	Height int
}

// realizeMsg runs a scheduled rebuild of the materialized page.
type realizeMsg struct{}

// inbox queues grid notifications raised during one Update so they go out as commands.
type inbox struct {
	msgs []tea.Msg
}

func (ib *inbox) post(msg tea.Msg) {
	ib.msgs = append(ib.msgs, msg)
}

func (ib *inbox) drain() tea.Cmd {

	if len(ib.msgs) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, len(ib.msgs))
	for i, msg := range ib.msgs {
		cmds[i] = message.Cmd(msg)
	}
	ib.msgs = nil
	return tea.Batch(cmds...)
}

// listen forwards grid notifications into the inbox.
func (ib *inbox) listen(g *grid.Grid) {

	g.OnSelectionChanged(func(sc grid.SelectionChange) {
		minCol, maxCol, minRow, maxRow, ok := g.SelectionRange()
		ib.post(message.SelectionMsg{
			Added:   len(sc.AddedCells),
			Removed: len(sc.RemovedCells),
			Cells:   g.SelectedCellCount(),
			Items:   len(g.SelectedItems()),
			Range:   message.Range{MinRow: minRow, MaxRow: maxRow, MinCol: minCol, MaxCol: maxCol, Ok: ok},
		})
	})

	g.OnCurrentCellChanged(func(old, cur grid.CellInfo) {
		ib.post(message.CurrentMsg{Current: cur})
	})

	g.OnRowEditEnded(func(ev grid.EditEvent) {
		id := ""
		if ev.Item != nil {
			id = ev.Item.Key()
		}
		ib.post(message.RowEndedMsg{Id: id, Action: ev.Action})
	})
}
