package main

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vstore/internal/demo"
	"github.com/vango-dev/vstore/internal/errors"
	"github.com/vango-dev/vstore/pkg/store"
)

func demoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive todo demo",
		Long: `Run a terminal todo list backed by a single store.

The list, the filter label and the remaining counter are each bound to
their own slice of the state. The render counters at the bottom show
which views re-rendered after each action.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// The terminal belongs to the UI; store logs are discarded.
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			todos := demo.NewTodos(cfg.Demo.Todos,
				store.WithName("todos"),
				store.WithLogger(logger),
			)

			model := demo.NewModel(todos)
			defer model.Close()

			if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
				return errors.New("E121").Wrap(err)
			}
			return nil
		},
	}
}
