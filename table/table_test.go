package table

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"grille/edible"
	nt "grille/entity"
	"grille/grid"
	"grille/message"
)

func fixture(n int, opts ...edible.Option) (Panel, *grid.Grid, *edible.Collection) {

	rows := make([]*nt.Row, n)
	for i := range rows {
		rows[i] = &nt.Row{
			Id:     fmt.Sprintf("r%d", i),
			Values: []nt.Value{{Raw: fmt.Sprintf("name%d", i)}, {Raw: int64(i)}},
		}
	}
	coll := edible.New(rows, opts...)

	columns := []nt.Column{{Field: "name", Width: 10}, {Field: "count", Width: 6}}
	fields := []nt.Field{{Name: "name", Type: "VARCHAR"}, {Name: "count", Type: "BIGINT"}}

	g := grid.New(coll, columns)
	pnl := New(context.Background(), g, coll, fields, nt.NopLogger{})
	return pnl, g, coll
}

// drive feeds msg to the panel, runs the commands it returns and feeds back the
// panel's own messages, returning everything else.
func drive(pnl Panel, msg tea.Msg) (Panel, []tea.Msg) {

	var out []tea.Msg
	queue := []tea.Msg{msg}

	for len(queue) > 0 {
		msg, queue = queue[0], queue[1:]

		switch msg := msg.(type) {
		case tea.BatchMsg:
			for _, cmd := range msg {
				if cmd != nil {
					queue = append(queue, cmd())
				}
			}
			continue
		case TableMsg, tea.KeyPressMsg:
		default:
			out = append(out, msg)
			continue
		}

		var cmd tea.Cmd
		pnl, cmd = pnl.Update(msg)
		if cmd != nil {
			queue = append(queue, cmd())
		}
	}
	return pnl, out
}

func press(pnl Panel, keys ...tea.KeyPressMsg) (Panel, []tea.Msg) {

	var out []tea.Msg
	for _, key := range keys {
		var msgs []tea.Msg
		pnl, msgs = drive(pnl, key)
		out = append(out, msgs...)
	}
	return pnl, out
}

func key(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: mod}
}

func text(s string) []tea.KeyPressMsg {

	var keys []tea.KeyPressMsg
	for _, r := range s {
		keys = append(keys, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return keys
}

func TestSizeRealizesPage(t *testing.T) {

	pnl, g, _ := fixture(20)
	pnl, _ = drive(pnl, SizeMsg{Width: 40, Height: 7})

	if pnl.PageSize() != 5 {
		t.Fatalf("page size = %d, want 5", pnl.PageSize())
	}
	if len(pnl.page.boxes) != 5 || pnl.page.pending {
		t.Errorf("realized %d boxes, pending %t", len(pnl.page.boxes), pnl.page.pending)
	}
	if cur := g.CurrentCell(); cur.Row != 0 || cur.Column != 0 {
		t.Errorf("current = %+v, want 0:0", cur)
	}
}

func TestArrowsSelectAndScroll(t *testing.T) {

	pnl, g, _ := fixture(20)
	pnl, _ = drive(pnl, SizeMsg{Width: 40, Height: 7})

	down := key(tea.KeyDown, 0)
	pnl, out := press(pnl, down, down, down, down, down, down)

	if cur := g.CurrentCell(); cur.Row != 6 {
		t.Fatalf("current row = %d, want 6", cur.Row)
	}
	if pnl.Offset() != 2 || pnl.page.offset != 2 {
		t.Errorf("offset = %d, realized at %d, want 2", pnl.Offset(), pnl.page.offset)
	}
	if !g.IsCellSelected(6, 0) || g.SelectedCellCount() != 1 {
		t.Errorf("selection = %d cells", g.SelectedCellCount())
	}

	var selections int
	for _, msg := range out {
		if _, ok := msg.(message.SelectionMsg); ok {
			selections++
		}
	}
	if selections != 6 {
		t.Errorf("got %d selection messages, want 6", selections)
	}

	if !pnl.page.boxAt(6).cells[0] {
		t.Errorf("box for row 6 not flagged selected")
	}
}

func TestShiftExtendsAndSpaceToggles(t *testing.T) {

	pnl, g, _ := fixture(5)
	pnl, _ = drive(pnl, SizeMsg{Width: 40, Height: 10})

	pnl, _ = press(pnl, key(tea.KeyDown, 0), key(tea.KeyDown, tea.ModShift), key(tea.KeyRight, tea.ModShift))
	if n := g.SelectedCellCount(); n != 4 {
		t.Fatalf("selected %d cells, want 4", n)
	}

	pnl, _ = press(pnl, key(tea.KeyDown, tea.ModCtrl), key(tea.KeySpace, 0))
	if !g.IsCellSelected(3, 1) || g.SelectedCellCount() != 5 {
		t.Errorf("space did not add 3:1, %d cells", g.SelectedCellCount())
	}

	pnl, _ = press(pnl, key('a', tea.ModCtrl))
	if n := g.SelectedCellCount(); n != 10 {
		t.Errorf("ctrl+a selected %d cells, want 10", n)
	}

	press(pnl, key(tea.KeyEscape, 0))
	if n := g.SelectedCellCount(); n != 0 {
		t.Errorf("esc left %d cells", n)
	}
}

func TestEditKeys(t *testing.T) {

	pnl, g, coll := fixture(3)
	pnl, _ = drive(pnl, SizeMsg{Width: 40, Height: 10})

	pnl, _ = press(pnl, key(tea.KeyEnter, 0), key(tea.KeyBackspace, 0))
	pnl, _ = press(pnl, text("X")...)

	if g.EditState() != grid.CellEditing || g.EditValue().String() != "nameX" {
		t.Fatalf("state %v, value %q", g.EditState(), g.EditValue().String())
	}
	if !strings.Contains(pnl.Render(), "nameX") {
		t.Errorf("edit value not rendered")
	}

	pnl, out := press(pnl, key(tea.KeyEnter, 0))
	if g.EditState() != grid.Idle {
		t.Errorf("enter did not commit the row")
	}
	if got := coll.Value(coll.At(0), 0).String(); got != "nameX" {
		t.Errorf("value = %q, want nameX", got)
	}

	var ended bool
	for _, msg := range out {
		if ev, ok := msg.(message.RowEndedMsg); ok && ev.Id == "r0" {
			ended = true
		}
	}
	if !ended {
		t.Errorf("no row ended message")
	}
}

func TestEscCancelsCellThenRow(t *testing.T) {

	pnl, g, coll := fixture(3)
	pnl, _ = drive(pnl, SizeMsg{Width: 40, Height: 10})

	pnl, _ = press(pnl, key(tea.KeyEnter, 0))
	pnl, _ = press(pnl, text("z")...)
	pnl, _ = press(pnl, key(tea.KeyTab, 0))
	if g.EditState() != grid.RowEditing {
		t.Fatalf("tab left state %v", g.EditState())
	}

	press(pnl, key(tea.KeyEscape, 0))
	if g.EditState() != grid.Idle {
		t.Errorf("esc left state %v", g.EditState())
	}
	if got := coll.Value(coll.At(0), 0).String(); got != "name0" {
		t.Errorf("value = %q after cancel, want name0", got)
	}
}

func TestInvalidValueHoldsCurrentCell(t *testing.T) {

	intCol := edible.WithCellValidator(1, func(val nt.Value) error {
		_, err := val.Int()
		return err
	})
	pnl, g, _ := fixture(3, intCol)
	pnl, _ = drive(pnl, SizeMsg{Width: 40, Height: 10})

	pnl, _ = press(pnl, key(tea.KeyRight, 0), key(tea.KeyEnter, 0))
	pnl, _ = press(pnl, text("q")...)
	pnl, out := press(pnl, key(tea.KeyDown, 0))

	if cur := g.CurrentCell(); cur.Row != 0 || cur.Column != 1 {
		t.Errorf("current moved to %d:%d", cur.Row, cur.Column)
	}
	if !g.HasCellValidationError() {
		t.Errorf("validation flag not set")
	}

	var flagged bool
	for _, msg := range out {
		if em, ok := msg.(message.EditMsg); ok && em.CellError {
			flagged = true
		}
	}
	if !flagged {
		t.Errorf("no edit message with the cell error")
	}
	if fl := pnl.flags(0, 1); !fl.Editing || !fl.Invalid {
		t.Errorf("flags = %+v", fl)
	}
}

func TestAddRowFromPlaceholder(t *testing.T) {

	pnl, g, coll := fixture(2, edible.WithPlaceholder(nt.PlaceholderAtEnd))
	pnl, _ = drive(pnl, SizeMsg{Width: 40, Height: 10})

	if !strings.Contains(pnl.Render(), placeholder) {
		t.Errorf("placeholder row not rendered")
	}

	pnl, _ = press(pnl, key(tea.KeyEnd, 0), key(tea.KeyEnter, 0))
	if !g.IsAddingNewItem() {
		t.Fatalf("enter on placeholder did not add")
	}
	pnl, _ = press(pnl, text("n")...)
	press(pnl, key(tea.KeyEnter, 0))

	if g.EditState() != grid.Idle || coll.Len() != 4 {
		t.Errorf("state %v, len %d", g.EditState(), coll.Len())
	}
	if got := coll.Value(coll.At(2), 0).String(); got != "n" {
		t.Errorf("added value = %q, want n", got)
	}
}

func TestRealizeCoalesces(t *testing.T) {

	pnl, _, coll := fixture(10)
	pnl, _ = drive(pnl, SizeMsg{Width: 40, Height: 6})

	coll.Insert(0, &nt.Row{Id: "a"})
	coll.Insert(0, &nt.Row{Id: "b"})

	if pnl.page.boxAt(0) != nil {
		t.Errorf("stale box still served for row 0")
	}

	var cmd1, cmd2 tea.Cmd
	pnl, cmd1 = pnl.Update(key(tea.KeyRight, tea.ModCtrl))
	pnl, cmd2 = pnl.Update(key(tea.KeyLeft, tea.ModCtrl))

	if !pnl.page.pending || cmd1 == nil {
		t.Fatalf("realize not scheduled")
	}
	if cmd2 != nil {
		if _, ok := cmd2().(realizeMsg); ok {
			t.Errorf("second realize scheduled while one is pending")
		}
	}

	pnl, _ = drive(pnl, realizeMsg{})
	if pnl.page.pending || pnl.page.boxAt(0) == nil || pnl.page.boxAt(0).item.Key() != "b" {
		t.Errorf("page not realized after the burst")
	}
}
