package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jacksmith/tasklist/internal/store"
)

// Run shows the list view until the user quits or ctx is cancelled.
// The store is closed on return.
func Run(ctx context.Context, s *store.Store, opts Options) error {
	defer s.Close()

	m := New(ctx, s, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run task list view: %w", err)
	}
	return nil
}
