package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todosync/internal/state"
)

// ─── Messages ───────────────────────────────────────────────────────────────
//
// All messages are internal to the Update loop. The tea.Cmd closures below
// run the blocking controller operations off the UI goroutine and deliver
// one message per settlement; Update re-snapshots the controller on each.

// loadSettledMsg arrives when the initial (or a manual) full fetch settles.
type loadSettledMsg struct{ err error }

// opSettledMsg arrives when a toggle, delete or bulk operation settles. The
// outcome lives in the controller's error slot, not in the message.
type opSettledMsg struct{}

// addSettledMsg carries the create outcome so the input is only cleared on
// success.
type addSettledMsg struct{ err error }

// renameSettledMsg carries the rename outcome so a failed edit keeps the
// item in edit mode.
type renameSettledMsg struct{ err error }

// ─── Commands ───────────────────────────────────────────────────────────────

func loadCmd(ctrl *state.Controller) tea.Cmd {
	return func() tea.Msg {
		return loadSettledMsg{err: ctrl.Load(context.Background())}
	}
}

func addCmd(ctrl *state.Controller, title string) tea.Cmd {
	return func() tea.Msg {
		return addSettledMsg{err: ctrl.Add(context.Background(), title)}
	}
}

func toggleCmd(ctrl *state.Controller, id int64, completed bool) tea.Cmd {
	return func() tea.Msg {
		_ = ctrl.SetCompleted(context.Background(), id, completed)
		return opSettledMsg{}
	}
}

func renameCmd(ctrl *state.Controller, id int64, title string) tea.Cmd {
	return func() tea.Msg {
		return renameSettledMsg{err: ctrl.Rename(context.Background(), id, title)}
	}
}

func deleteCmd(ctrl *state.Controller, id int64) tea.Cmd {
	return func() tea.Msg {
		_ = ctrl.Delete(context.Background(), id)
		return opSettledMsg{}
	}
}

func clearCompletedCmd(ctrl *state.Controller) tea.Cmd {
	return func() tea.Msg {
		_ = ctrl.ClearCompleted(context.Background())
		return opSettledMsg{}
	}
}

func toggleAllCmd(ctrl *state.Controller) tea.Cmd {
	return func() tea.Msg {
		_ = ctrl.ToggleAll(context.Background())
		return opSettledMsg{}
	}
}
