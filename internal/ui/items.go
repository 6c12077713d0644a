package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/state"
)

// listItem adapts a model.Todo to bubbles/list.Item.
type listItem struct {
	todo model.Todo
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.todo.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Title }

// renderCtx is shared between the model and the delegate so every frame
// renders against the latest snapshot and spinner frame.
type renderCtx struct {
	snap      state.Snapshot
	spinFrame string
}

// Custom delegate to control how items render (single line). Busy items get
// a spinner overlay in place of their checkbox.
type itemDelegate struct {
	rctx *renderCtx
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)

	boxStyled := mutedStyle.Render(boxUnchecked)
	textStyled := it.todo.Title
	if it.todo.Completed {
		boxStyled = successStyle.Render(boxChecked)
		textStyled = doneStyle.Render(it.todo.Title)
	}
	if d.rctx.snap.BusyWith(it.todo) {
		boxStyled = pendingStyle.Render(d.rctx.spinFrame)
	}

	line := fmt.Sprintf("%s %s", boxStyled, textStyled)
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}
