package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/saltandserenity/booking/internal/console"
)

func runTUI(cmd *cobra.Command, args []string) error {
	model := console.NewModel(cmd.Context(), client())
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}
