package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/slotwise/adapter/cli"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/application/queries"
	"github.com/felixgeelhaar/slotwise/internal/scheduling/domain"
)

var (
	suggestDuration     int
	suggestFrom         string
	suggestTo           string
	suggestParticipants string
	suggestLimit        int
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest ranked time slots without booking",
	Long: `List feasible time slots for a meeting, ranked by historical success,
time-of-day preference, participant availability, day-of-week patterns, and
buffer quality.

Examples:
  slotwise schedule suggest --from 2026-03-02 --to 2026-03-06
  slotwise schedule suggest --duration 45 --participants ada@example.com,grace@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil {
			fmt.Println("Scheduling requires an initialized application; check configuration.")
			return nil
		}

		rangeStart, err := parseDate(suggestFrom)
		if err != nil {
			return fmt.Errorf("invalid --from: %w", err)
		}
		rangeEnd, err := parseDate(suggestTo)
		if err != nil {
			return fmt.Errorf("invalid --to: %w", err)
		}

		var participants []domain.Participant
		if suggestParticipants != "" {
			for _, email := range strings.Split(suggestParticipants, ",") {
				email = strings.TrimSpace(email)
				if email == "" {
					continue
				}
				participants = append(participants, domain.Participant{
					ID:    uuid.New(),
					Email: email,
				})
			}
		}

		result, err := app.SuggestSlotsHandler.Handle(cmd.Context(), queries.SuggestSlotsQuery{
			Request: domain.SchedulingRequest{
				ID:           uuid.New(),
				Duration:     time.Duration(suggestDuration) * time.Minute,
				Participants: participants,
				RangeStart:   rangeStart,
				RangeEnd:     rangeEnd,
			},
			Policy:         app.Policy,
			MaxSuggestions: suggestLimit,
		})
		if err != nil {
			return fmt.Errorf("suggest failed: %w", err)
		}

		if len(result.Suggestions) == 0 {
			fmt.Println("No available time slots found.")
			return nil
		}

		fmt.Printf("%d candidate slot(s), mean score %.1f, calendar %.0f%% booked\n\n",
			result.Analytics.TotalCandidates,
			result.Analytics.MeanScore,
			result.Analytics.UtilizationPct,
		)

		for _, slot := range result.Suggestions {
			fmt.Printf("  %s  score %5.1f  %-10s", slot.Start.Format("Mon Jan 2 15:04"), slot.Score, slot.Label)
			if len(slot.Availability) > 0 {
				fmt.Printf("  %d/%d available", slot.AvailableCount(), len(slot.Availability))
			}
			fmt.Println()
		}

		if len(result.Recommendations) > 0 {
			fmt.Println()
			for _, rec := range result.Recommendations {
				fmt.Printf("  [%s] %s\n", rec.Kind, rec.Message)
			}
		}

		return nil
	},
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestDuration, "duration", "d", 60, "meeting duration in minutes")
	suggestCmd.Flags().StringVar(&suggestFrom, "from", "", "start of the date range (YYYY-MM-DD, required)")
	suggestCmd.Flags().StringVar(&suggestTo, "to", "", "end of the date range (YYYY-MM-DD, required)")
	suggestCmd.Flags().StringVarP(&suggestParticipants, "participants", "p", "", "comma-separated participant emails")
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 10, "maximum suggestions to print")
	_ = suggestCmd.MarkFlagRequired("from")
	_ = suggestCmd.MarkFlagRequired("to")
}
