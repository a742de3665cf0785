package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samvad-hq/fetchview/internal/view"
	"github.com/samvad-hq/fetchview/pkg/endpoints"
)

// Run blocks until the user quits.
func Run(ctx context.Context, runner Runner, regions *view.Regions, eps []endpoints.Endpoint) error {
	p := tea.NewProgram(NewModel(ctx, runner, regions, eps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
