package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskpad/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.globalBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", keyLabel(kb.Key), kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "j/k", Action: "move selection"},
		{Key: m.Keys.New, Action: "new task"},
		{Key: m.Keys.Edit, Action: "edit selected task"},
		{Key: m.Keys.Toggle, Action: "toggle done"},
		{Key: m.Keys.Cycle, Action: "cycle status"},
		{Key: m.Keys.Delete, Action: "delete selected task"},
		{Key: m.Keys.ClearDone, Action: "clear completed tasks"},
		{Key: m.Keys.Filter + "/" + m.Keys.FilterBack, Action: "next/previous filter"},
		{Key: m.Keys.Notify, Action: "enable overdue notifications"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: "esc", Action: "clear search"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		label := keyLabel(kb.Key)
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(label, kb.Action)))
	}
	return out
}
