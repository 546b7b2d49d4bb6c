package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assetpipe/internal/domain/dto"
	"assetpipe/internal/domain/entity"
)

type MockLister struct{ mock.Mock }

func (m *MockLister) ListAssets(ctx context.Context, folder, namePrefix string) ([]dto.AssetDescriptor, error) {
	args := m.Called(ctx, folder, namePrefix)

	return args.Get(0).([]dto.AssetDescriptor), args.Error(1)
}

type MockDeleter struct{ mock.Mock }

func (m *MockDeleter) BulkDelete(ctx context.Context, ids []string, progress entity.ProgressFunc,
) (entity.BatchReport, error) {
	args := m.Called(ctx, ids, progress)

	return args.Get(0).(entity.BatchReport), args.Error(1)
}

func assets(names ...string) []dto.AssetDescriptor {
	out := make([]dto.AssetDescriptor, 0, len(names))
	for i, n := range names {
		out = append(out, dto.AssetDescriptor{ID: fmt.Sprintf("id-%d", i), FileName: n, Folder: "blog"})
	}

	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}

	return cmd
}

func loaded(t *testing.T, names ...string) *Model {
	t.Helper()

	m := New(context.Background(), &MockLister{}, &MockDeleter{}, "blog")
	press(m, assetsLoadedMsg{assets: assets(names...)})
	require.Len(t, m.page(), min(len(names), perPage))

	return m
}

func TestSelectAllHonorsFilter(t *testing.T) {
	t.Parallel()

	m := loaded(t, "cat.png", "car.png", "dog.png", "duck.png", "eel.png",
		"fox.png", "gnu.png", "hen.png", "ibis.png", "jay.png")

	press(m, runes("/"), runes("c"), runes("a"), tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.page(), 2)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Equal(t, []string{"id-0", "id-1"}, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.Selected())
}

func TestShortcutsIgnoredWhileFiltering(t *testing.T) {
	t.Parallel()

	m := loaded(t, "a.png", "b.png")

	press(m, runes("/"), tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.True(t, m.filter.Focused())
	assert.Empty(t, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.False(t, m.filter.Focused())
	assert.Len(t, m.Selected(), 2)
}

func TestMetaSelectAll(t *testing.T) {
	t.Parallel()

	m := loaded(t, "a.png", "b.png", "c.png")
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Alt: true})

	assert.Len(t, m.Selected(), 3)
}

func TestToggleAndCursor(t *testing.T) {
	t.Parallel()

	m := loaded(t, "a.png", "b.png", "c.png")
	press(m, runes(" "), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, runes(" "))
	assert.Equal(t, []string{"id-0", "id-2"}, m.Selected())

	press(m, runes(" "))
	assert.Equal(t, []string{"id-0"}, m.Selected())
}

func TestSelectionScopedToPage(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, perPage+3)
	for i := range perPage + 3 {
		names = append(names, fmt.Sprintf("file-%02d.png", i))
	}
	m := loaded(t, names...)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Len(t, m.Selected(), perPage)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Empty(t, m.Selected())

	press(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	assert.Len(t, m.Selected(), 3)
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	t.Parallel()

	lister := &MockLister{}
	lister.On("ListAssets", mock.Anything, "blog", "").Return(assets("b.png"), nil)
	deleter := &MockDeleter{}
	deleter.On("BulkDelete", mock.Anything, []string{"id-0"}, mock.Anything).
		Return(entity.BatchReport{Total: 1, Succeeded: 1}, nil)

	m := New(context.Background(), lister, deleter, "blog")
	press(m, assetsLoadedMsg{assets: assets("a.png", "b.png")})

	assert.Nil(t, press(m, tea.KeyMsg{Type: tea.KeyDelete}), "nothing selected")
	assert.Nil(t, m.confirming)

	press(m, runes(" "), tea.KeyMsg{Type: tea.KeyDelete})
	require.Equal(t, []string{"id-0"}, m.confirming)
	assert.Contains(t, m.View(), "delete 1 assets? (y/n)")

	press(m, runes("n"))
	assert.Nil(t, m.confirming)
	deleter.AssertNotCalled(t, "BulkDelete", mock.Anything, mock.Anything, mock.Anything)

	press(m, tea.KeyMsg{Type: tea.KeyDelete})
	cmd := press(m, runes("y"))
	require.NotNil(t, cmd)

	done := cmd()
	require.IsType(t, deletedMsg{}, done)

	reload := press(m, done)
	assert.Empty(t, m.Selected())
	assert.Contains(t, m.status, "deleted 1")

	press(m, reload())
	assert.Len(t, m.page(), 1)
	deleter.AssertExpectations(t)
	lister.AssertExpectations(t)
}

func TestViewShowsLoadError(t *testing.T) {
	t.Parallel()

	m := New(context.Background(), &MockLister{}, &MockDeleter{}, "")
	press(m, assetsLoadedMsg{err: fmt.Errorf("store unreachable")})

	view := m.View()
	assert.Contains(t, view, "assets · all")
	assert.Contains(t, view, "no assets")
	assert.Contains(t, view, "store unreachable")
}
