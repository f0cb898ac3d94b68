package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidosq/sozdyq/internal/vocab"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Words")
		for _, row := range []struct {
			label  string
			status vocab.Status
		}{
			{"queued", vocab.StatusWantToLearn},
			{"learning", vocab.StatusLearning},
			{"learned", vocab.StatusLearned},
			{"review", vocab.StatusReview},
			{"mastered", vocab.StatusMastered},
		} {
			fmt.Printf("  %-10s %d\n", row.label, stats.WordsByStatus[row.status])
		}

		fmt.Println("Practice")
		fmt.Printf("  %-10s %d\n", "sessions", stats.SessionCount)
		fmt.Printf("  %-10s %d\n", "answers", stats.AnswerCount)
		if stats.AnswerCount > 0 {
			fmt.Printf("  %-10s %.0f%%\n", "accuracy", stats.Accuracy())
		}
		if stats.TotalPractice > 0 {
			fmt.Printf("  %-10s %s\n", "time", stats.TotalPractice.Round(time.Second))
		}
		if stats.LastPracticeAt != nil {
			fmt.Printf("  %-10s %s\n", "last", stats.LastPracticeAt.Format("2006-01-02"))
		}
		return nil
	},
}
