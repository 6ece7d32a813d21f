package schedule

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/slotwise/adapter/cli"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/application/commands"
)

var (
	autoFile      string
	autoThreshold float64
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Auto-schedule a batch of meeting requests",
	Long: `Automatically place a batch of meeting requests into the best available
time slots.

Each request is scored against working hours, existing bookings, historical
meeting outcomes, and participant availability. Slots scoring at or above
the auto-commit threshold are booked immediately; weaker candidates are
returned as suggestions for manual selection.

Examples:
  slotwise schedule auto --file requests.json
  slotwise schedule auto --file requests.json --threshold 70`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			fmt.Println("Scheduling requires an initialized application; check configuration.")
			return nil
		}

		requests, err := loadRequests(autoFile)
		if err != nil {
			return err
		}

		threshold := autoThreshold
		if threshold == 0 {
			threshold = app.Config.AutoCommitThreshold
		}

		result, err := app.AutoScheduleHandler.Handle(cmd.Context(), commands.AutoScheduleCommand{
			Requests:  requests,
			Policy:    app.Policy,
			Threshold: threshold,
		})
		if err != nil {
			return fmt.Errorf("auto-schedule failed: %w", err)
		}

		fmt.Printf("Processed %d request(s): %d scheduled, %d deferred, %d unresolved\n\n",
			result.Size(), len(result.Scheduled), len(result.Deferred), len(result.Unresolved))

		for _, meeting := range result.Scheduled {
			fmt.Printf("  booked   %-12s %s (score %.1f, %s)\n",
				meeting.Request.MeetingType,
				meeting.Slot.Start.Format("Mon Jan 2 15:04"),
				meeting.Slot.Score,
				meeting.Slot.Label,
			)
		}

		for _, deferred := range result.Deferred {
			fmt.Printf("  deferred %-12s best candidates:\n", deferred.Request.MeetingType)
			for _, slot := range deferred.Suggestions {
				fmt.Printf("             %s (score %.1f, %s)\n",
					slot.Start.Format("Mon Jan 2 15:04"), slot.Score, slot.Label)
			}
		}

		for _, unresolved := range result.Unresolved {
			fmt.Printf("  failed   %-12s %s\n", unresolved.Request.MeetingType, unresolved.Reason)
		}

		return nil
	},
}

func init() {
	autoCmd.Flags().StringVarP(&autoFile, "file", "f", "", "JSON file with scheduling requests (required)")
	autoCmd.Flags().Float64Var(&autoThreshold, "threshold", 0, "auto-commit score threshold (default from config)")
	_ = autoCmd.MarkFlagRequired("file")
}
