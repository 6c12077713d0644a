// Package ui is the interactive single-page view over the todo collection.
// It renders controller snapshots and never touches the collection itself;
// every user action becomes a command that runs one reconciliation
// operation and reports back when it settles.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todosync/internal/model"
	"github.com/idilsaglam/todosync/internal/state"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// Model is the Bubble Tea model for the todo list.
type Model struct {
	ctrl *state.Controller
	rctx *renderCtx

	list   list.Model
	ti     textinput.Model // shared text input model (used for add & edit)
	spin   spinner.Model
	filter model.Filter

	mode   mode
	editID int64 // todo being edited while mode == modeEdit

	width, height int
	loading       bool // initial fetch still in flight
}

// New builds the model over an already-constructed controller.
func New(ctrl *state.Controller) Model {
	rctx := &renderCtx{}

	l := list.New(nil, itemDelegate{rctx: rctx}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")

	// Extend help with the remote operations
	extra := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "toggle all")),
		key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear done")),
		key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1-3", "filter")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss error")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return extra[:4] }
	l.AdditionalFullHelpKeys = func() []key.Binding { return extra }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle

	m := Model{
		ctrl:    ctrl,
		rctx:    rctx,
		list:    l,
		ti:      ti,
		spin:    sp,
		loading: true,
	}
	m.refresh()
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(ctrl *state.Controller) error {
	p := tea.NewProgram(New(ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// refresh re-snapshots the controller and rebuilds the visible items.
func (m *Model) refresh() {
	snap := m.ctrl.Snapshot()
	m.rctx.snap = snap

	visible := snap.Filtered(m.filter)
	items := make([]list.Item, 0, len(visible))
	for _, td := range visible {
		items = append(items, listItem{todo: td})
	}
	m.list.SetItems(items)
	m.list.Title = headerLine(snap, m.filter)
}

// headerLine renders the title with live counts.
func headerLine(snap state.Snapshot, f model.Filter) string {
	return fmt.Sprintf("%s   %s %d  %s %d  %s %s",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), snap.Views.CompletedCount,
		pendingStyle.Render("•"), snap.Views.ActiveCount,
		accentStyle.Render("Filter"), f.String(),
	)
}

// selected returns the todo under the cursor, if any.
func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

// Update and View implement Bubble Tea's Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, loadCmd(m.ctrl))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.rctx.spinFrame = m.spin.View()
		return m, cmd

	case loadSettledMsg:
		m.loading = false
		m.refresh()
		return m, nil

	case opSettledMsg:
		m.refresh()
		return m, nil

	case addSettledMsg:
		m.refresh()
		if msg.err == nil {
			m.ti.SetValue("")
		}
		return m, nil

	case renameSettledMsg:
		m.refresh()
		if msg.err == nil {
			m.mode = modeList
			m.ti.SetValue("")
			m.ti.Blur()
		}
		// On failure the input stays in edit mode: the rename did not
		// happen, so the user can retry or back out with esc.
		return m, nil
	}

	// add mode
	if m.mode == modeAdd {
		var cmd tea.Cmd
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				if m.rctx.snap.InputLocked {
					return m, nil // a create is already in flight
				}
				return m, addCmd(m.ctrl, m.ti.Value())
			case "esc":
				m.mode = modeList
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// edit mode
	if m.mode == modeEdit {
		var cmd tea.Cmd
		switch x := msg.(type) {
		case tea.KeyMsg:
			switch x.String() {
			case "enter":
				return m, renameCmd(m.ctrl, m.editID, m.ti.Value())
			case "esc":
				m.mode = modeList
				m.ti.SetValue("")
				m.ti.Blur()
				return m, nil
			}
		}
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ":
			if td, ok := m.selected(); ok && !m.rctx.snap.BusyWith(td) {
				return m, toggleCmd(m.ctrl, td.ID, !td.Completed)
			}
			return m, nil

		case "d":
			if td, ok := m.selected(); ok && !m.rctx.snap.BusyWith(td) {
				return m, deleteCmd(m.ctrl, td.ID)
			}
			return m, nil

		case "a":
			m.mode = modeAdd
			m.ti.SetValue("")
			m.ti.Placeholder = "New todo title..."
			m.ti.Focus()
			return m, nil

		case "e":
			if td, ok := m.selected(); ok && !m.rctx.snap.BusyWith(td) {
				m.mode = modeEdit
				m.editID = td.ID
				m.ti.SetValue(td.Title)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit todo title..."
				m.ti.Focus()
			}
			return m, nil

		case "T":
			return m, toggleAllCmd(m.ctrl)

		case "C":
			return m, clearCompletedCmd(m.ctrl)

		case "1":
			m.filter = model.FilterAll
			m.refresh()
			return m, nil
		case "2":
			m.filter = model.FilterActive
			m.refresh()
			return m, nil
		case "3":
			m.filter = model.FilterCompleted
			m.refresh()
			return m, nil

		case "r":
			m.loading = true
			return m, loadCmd(m.ctrl)

		case "x":
			m.ctrl.DismissError()
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	w, h := m.width, m.height
	if w == 0 {
		w, h = 80, 24
	}
	listHeight := h - 4
	if m.mode != modeList {
		listHeight = h - 6
	}
	m.list.SetSize(w-2, listHeight)

	content := m.list.View()
	if m.loading {
		content = m.rctx.spinFrame + " " + mutedStyle.Render("loading todos...")
	}

	if pending := m.rctx.snap.PendingTitle; pending != "" {
		content += "\n  " + m.rctx.spinFrame + " " + mutedStyle.Render(pending)
	}

	if f := m.rctx.snap.Failure; f != state.FailureNone {
		content += "\n" + errorStyle.Render("✖ "+f.Message()) + helpStyle.Render("  press x to dismiss")
	}

	if m.mode != modeList {
		title := "Add new todo"
		if m.mode == modeEdit {
			title = "Edit todo"
		}
		inputLine := title + "\n" + m.ti.View()
		content = content + "\n" + panelStyle().Render(inputLine)
	}
	return panelStyle().Render(content)
}
