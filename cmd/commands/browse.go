package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"assetpipe/internal/presentation/tui"
)

// HandleBrowse opens the terminal browser. An optional fourth argument picks the folder.
func HandleBrowse(args []string) {
	cfg := loadConfig(args)

	svc, err := wire(cfg)
	if err != nil {
		ExitOnError(err)
	}
	defer svc.close()

	folder := ""
	if len(args) > 3 {
		folder = args[3]
	}

	model := tui.New(context.Background(), svc.lister, svc.deleter, folder)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		ExitOnError(err)
	}
}
