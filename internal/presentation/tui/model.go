// Package tui is a terminal browser over the asset catalog with multi-select and bulk delete.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"assetpipe/internal/application/selection"
	"assetpipe/internal/application/usecase/abstraction"
	"assetpipe/internal/domain/dto"
	"assetpipe/internal/domain/entity"
)

const perPage = 15

type (
	assetsLoadedMsg struct {
		assets []dto.AssetDescriptor
		err    error
	}
	deletedMsg struct {
		report entity.BatchReport
		err    error
	}
)

type Model struct {
	ctx     context.Context
	lister  abstraction.Lister
	deleter abstraction.Deleter
	folder  string

	filter    textinput.Model
	paginator paginator.Model

	assets   []dto.AssetDescriptor
	filtered []dto.AssetDescriptor
	cursor   int

	set *selection.Set
	bus *selection.Bus
	sub *selection.Subscription

	confirming []string
	status     string
	err        error
}

// New builds a browser over folder; "all" or "" shows every folder.
func New(ctx context.Context, lister abstraction.Lister, deleter abstraction.Deleter, folder string) *Model {
	filter := textinput.New()
	filter.Placeholder = "filter by name"
	filter.Prompt = "/ "

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = perPage

	m := &Model{
		ctx:       ctx,
		lister:    lister,
		deleter:   deleter,
		folder:    folder,
		filter:    filter,
		paginator: p,
		set:       selection.NewSet(),
		bus:       selection.NewBus(),
	}
	m.sub = selection.Bind(m.bus, m.set, func(ids []string) {
		m.confirming = ids
	})

	return m
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		assets, err := m.lister.ListAssets(m.ctx, m.folder, "")

		return assetsLoadedMsg{assets: assets, err: err}
	}
}

func (m *Model) remove(ids []string) tea.Cmd {
	return func() tea.Msg {
		rep, err := m.deleter.BulkDelete(m.ctx, ids, nil)

		return deletedMsg{report: rep, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case assetsLoadedMsg:
		m.err = msg.err
		m.assets = msg.assets
		m.applyFilter()

		return m, nil

	case deletedMsg:
		m.err = msg.err
		m.status = fmt.Sprintf("deleted %d, failed %d, skipped %d",
			msg.report.Succeeded, msg.report.Failed, msg.report.Skipped)
		m.set.Clear()

		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.sub.Close()

		return m, tea.Quit
	}

	if m.confirming != nil {
		return m.handleConfirm(msg)
	}

	if m.filter.Focused() {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyEnter:
			m.filter.Blur()

			return m, nil
		}

		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()

		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.sub.Close()

		return m, tea.Quit
	case "/":
		return m, m.filter.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.page())-1 {
			m.cursor++
		}
	case "left", "h":
		m.paginator.PrevPage()
		m.syncPage()
	case "right", "l":
		m.paginator.NextPage()
		m.syncPage()
	case " ":
		if page := m.page(); m.cursor < len(page) {
			m.set.Toggle(page[m.cursor].ID)
		}
	case "r":
		return m, m.load()
	default:
		m.bus.Dispatch(keyEvent(msg, false))
	}

	return m, nil
}

func (m *Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		ids := m.confirming
		m.confirming = nil
		m.status = fmt.Sprintf("deleting %d assets", len(ids))

		return m, m.remove(ids)
	case "n", "N", "esc":
		m.confirming = nil
	}

	return m, nil
}

// keyEvent translates a terminal key press. Terminals deliver Cmd as alt, so alt maps to Meta.
func keyEvent(msg tea.KeyMsg, editing bool) selection.KeyEvent {
	e := selection.KeyEvent{FocusEditable: editing}
	switch {
	case msg.Type == tea.KeyCtrlA:
		e.Key = "a"
		e.Ctrl = true
	case msg.Alt && msg.Type == tea.KeyRunes:
		e.Key = string(msg.Runes)
		e.Meta = true
	default:
		e.Key = msg.String()
	}

	return e
}

func (m *Model) applyFilter() {
	prefix := strings.ToLower(m.filter.Value())

	m.filtered = m.filtered[:0]
	for _, a := range m.assets {
		if strings.HasPrefix(strings.ToLower(a.FileName), prefix) {
			m.filtered = append(m.filtered, a)
		}
	}

	m.paginator.SetTotalPages(len(m.filtered))
	if len(m.filtered) == 0 {
		m.paginator.Page = 0
	} else if m.paginator.Page >= m.paginator.TotalPages {
		m.paginator.Page = max(0, m.paginator.TotalPages-1)
	}
	m.syncPage()
}

// syncPage scopes the selection to what is on screen.
func (m *Model) syncPage() {
	page := m.page()
	ids := make([]string, 0, len(page))
	for _, a := range page {
		ids = append(ids, a.ID)
	}
	m.set.SetVisible(ids)

	if m.cursor >= len(page) {
		m.cursor = max(0, len(page)-1)
	}
}

func (m *Model) page() []dto.AssetDescriptor {
	start, end := m.paginator.GetSliceBounds(len(m.filtered))
	if start >= end {
		return nil
	}

	return m.filtered[start:end]
}

// Selected returns the ids currently selected on screen.
func (m *Model) Selected() []string {
	return m.set.Selected()
}

func (m *Model) View() string {
	var b strings.Builder

	folder := m.folder
	if folder == "" {
		folder = "all"
	}
	b.WriteString(titleStyle.Render("assets · "+folder) + "\n")
	b.WriteString(m.filter.View() + "\n\n")

	for i, a := range m.page() {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}

		mark := "[ ]"
		line := fmt.Sprintf("%s %-40s %8d  %s", mark, a.FileName, a.Size, mutedStyle.Render(a.Folder))
		if m.set.IsSelected(a.ID) {
			mark = "[x]"
			line = selectedStyle.Render(fmt.Sprintf("%s %-40s %8d  %s", mark, a.FileName, a.Size, a.Folder))
		}
		b.WriteString(pointer + line + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(mutedStyle.Render("  no assets") + "\n")
	}

	b.WriteString("\n" + m.paginator.View() + "\n")

	switch {
	case m.confirming != nil:
		b.WriteString(warningStyle.Render(fmt.Sprintf("delete %d assets? (y/n)", len(m.confirming))) + "\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	case m.status != "":
		b.WriteString(mutedStyle.Render(m.status) + "\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d selected · space toggle · ctrl+a all · esc clear · del delete · q quit",
		m.set.Len())))

	return b.String()
}
