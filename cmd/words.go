package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidosq/sozdyq/internal/enrich"
	"github.com/aidosq/sozdyq/internal/vocab"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage your word list",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List words by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		if status != "" && !vocab.Status(status).Valid() {
			return fmt.Errorf("unknown status %q", status)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		statuses := []vocab.Status{
			vocab.StatusLearning, vocab.StatusWantToLearn,
			vocab.StatusLearned, vocab.StatusReview, vocab.StatusMastered,
		}
		if status != "" {
			statuses = []vocab.Status{vocab.Status(status)}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush()
		for _, s := range statuses {
			words, err := st.Words().ListByStatus(cmd.Context(), s)
			if err != nil {
				return err
			}
			for _, word := range words {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					word.Headword, word.Transliteration, word.Translation, s)
			}
		}
		return nil
	},
}

var wordsAddCmd = &cobra.Command{
	Use:   "add [count]",
	Short: "Add random catalog words to your list",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count := defaultDailyGoal
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("count must be a positive number, got %q", args[0])
			}
			count = n
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		added, err := st.Words().AddRandomWords(cmd.Context(), count, 0, 0)
		if err != nil {
			return err
		}
		fmt.Printf("Added %d words:\n", added.WordsAdded)
		for _, w := range added.Words {
			fmt.Printf("  %s — %s\n", w.Headword, w.Translation)
		}
		return nil
	},
}

var wordsEnrichCmd = &cobra.Command{
	Use:   "enrich <headword>",
	Short: "Generate an example sentence and mnemonic for a word",
	Long: "Uses a configured LLM provider (SOZDYQ_LLM_PROVIDER or any of " +
		"GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY) " +
		"to generate usage material for a catalog word.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		word, err := st.Words().Find(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cfg, ok := enrich.DiscoverConfig()
		if !ok {
			return fmt.Errorf("no LLM provider configured; set an API key first")
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		var logf enrich.Logf
		if verbose {
			logf = func(format string, a ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", a...)
			}
		}

		provider, err := enrich.NewProvider(cmd.Context(), cfg, logf)
		if err != nil {
			return fmt.Errorf("init provider: %w", err)
		}

		enricher := enrich.NewEnricher(provider, 60*time.Second)
		result, err := enricher.EnrichWord(cmd.Context(), word)
		if err != nil {
			return fmt.Errorf("enrich %q: %w", word.Headword, err)
		}

		fmt.Printf("%s [%s] — %s\n\n", word.Headword, word.Transliteration, word.Translation)
		fmt.Printf("Example:     %s\n", result.ExampleSentence)
		fmt.Printf("Translation: %s\n", result.SentenceTranslation)
		fmt.Printf("Mnemonic:    %s\n", result.Mnemonic)
		if result.UsageNote != "" {
			fmt.Printf("Note:        %s\n", result.UsageNote)
		}
		return nil
	},
}

func init() {
	wordsListCmd.Flags().String("status", "", "Filter by status (want_to_learn, learning, learned, review, mastered)")
	wordsEnrichCmd.Flags().Bool("verbose", false, "Log provider latency and cost to stderr")

	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsAddCmd)
	wordsCmd.AddCommand(wordsEnrichCmd)
}
