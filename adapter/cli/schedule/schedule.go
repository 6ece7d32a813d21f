// Package schedule holds the slot suggestion and auto-scheduling commands.
package schedule

import (
	"github.com/spf13/cobra"
)

// Cmd is the schedule command group
var Cmd = &cobra.Command{
	Use:   "schedule",
	Short: "Suggest and book interview slots",
	Long:  `Enumerate, rank, and book interview slots within working hours.`,
}

func init() {
	Cmd.AddCommand(suggestCmd)
	Cmd.AddCommand(autoCmd)
}
