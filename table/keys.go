package table

import (
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	nt "grille/entity"
	"grille/grid"
	"grille/message"
)

// gesture is how a key applies to the selection.
type gesture int

const (
	plain gesture = iota
	extend
	moveOnly
)

var arrows = map[string][2]int{
	"up":    {-1, 0},
	"down":  {1, 0},
	"left":  {0, -1},
	"right": {0, 1},
}

func (pnl Panel) handleKey(msg tea.KeyPressMsg) Panel {

	g := pnl.grid
	key := msg.String()

	if g.EditState() == grid.CellEditing && pnl.editKey(key) {
		return pnl
	}

	if step, ok := arrows[key]; ok {
		pnl.move(step[0], step[1], plain)
		return pnl
	}
	if step, ok := arrows[trimMod(key, "shift+")]; ok {
		pnl.move(step[0], step[1], extend)
		return pnl
	}
	if step, ok := arrows[trimMod(key, "ctrl+")]; ok {
		pnl.move(step[0], step[1], moveOnly)
		return pnl
	}

	switch key {
	case "pgup":
		pnl.move(-max(pnl.PageSize(), 1), 0, plain)

	case "pgdown":
		pnl.move(max(pnl.PageSize(), 1), 0, plain)

	case "home":
		pnl.jump(0)

	case "end":
		pnl.jump(g.RowCount() - 1)

	case "space":
		cur := g.CurrentCell()
		if cur.Valid() {
			pnl.report(g.HandleCellInput(grid.Cell{Item: cur.Item, Column: cur.Column}, false, true))
		}

	case "ctrl+a":
		pnl.report(g.SelectAll())

	case "enter", "f2":
		if key == "enter" && g.IsEditing() {
			g.CommitEdit(grid.RowEdit)
			pnl.postEdit()
			return pnl
		}
		cur := g.CurrentCell()
		if cur.Valid() {
			g.BeginEdit(grid.Cell{Item: cur.Item, Column: cur.Column})
			pnl.postEdit()
		}

	case "tab":
		if g.IsEditing() {
			g.CommitEdit(grid.CellEdit)
			pnl.postEdit()
		}

	case "esc":
		switch g.EditState() {
		case grid.CellEditing:
			g.CancelEdit(grid.CellEdit)
		case grid.RowEditing, grid.RowAdding:
			g.CancelEdit(grid.RowEdit)
		default:
			g.UnselectAll()
		}
		pnl.postEdit()
	}

	return pnl
}

// editKey applies text keys to the cell under edit and reports whether it consumed key.
func (pnl Panel) editKey(key string) bool {

	g := pnl.grid
	text := g.EditValue().String()

	switch {
	case key == "backspace":
		if text == "" {
			return true
		}
		_, size := utf8.DecodeLastRuneInString(text)
		text = text[:len(text)-size]

	case key == "space":
		text += " "

	case utf8.RuneCountInString(key) == 1:
		text += key

	default:
		return false
	}

	pnl.report(g.SetEditValue(nt.Value{Raw: text}))
	return true
}

// move steps the current cell by rows and cols and applies the gesture there.
func (pnl Panel) move(rows, cols int, gst gesture) {

	g := pnl.grid
	if g.RowCount() == 0 || len(g.Columns()) == 0 {
		return
	}

	cur := g.CurrentCell()
	row, col := 0, 0
	if cur.Valid() {
		row = clamp(cur.Row+rows, 0, g.RowCount()-1)
		col = clamp(cur.Column+cols, 0, len(g.Columns())-1)
	}
	cell := grid.Cell{Item: g.ItemAt(row), Column: col}

	if gst == moveOnly {
		_, err := g.SetCurrentCell(cell)
		pnl.report(err)
		pnl.postEdit()
		return
	}

	err := g.HandleCellInput(cell, gst == extend, false)
	pnl.report(err)
	if err != nil || g.IsEditing() {
		pnl.postEdit()
	}
}

func (pnl Panel) jump(row int) {

	cur := pnl.grid.CurrentCell()
	if !cur.Valid() {
		pnl.move(0, 0, plain)
		return
	}
	pnl.move(row-cur.Row, 0, plain)
}

func (pnl Panel) postEdit() {

	g := pnl.grid
	pnl.inbox.post(message.EditMsg{
		State:     g.EditState(),
		CellError: g.HasCellValidationError(),
		RowError:  g.HasRowValidationError(),
	})
}

func trimMod(key, mod string) string {
	if len(key) > len(mod) && key[:len(mod)] == mod {
		return key[len(mod):]
	}
	return ""
}

func clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}
