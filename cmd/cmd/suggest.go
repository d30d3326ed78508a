package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"draftforge/internal/trends"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest evergreen article topics for a category",
	Long: `Print curated topic suggestions for a category without touching any
search backend. Useful when the trend providers are unconfigured or
rate limited.

Known categories: ` + strings.Join(trends.Categories(), ", ") + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		count, _ := cmd.Flags().GetInt("count")

		topics := trends.SuggestTopics(category, count)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Suggestions for %s:\n\n", trends.CategoryLabel(category))
		for i, topic := range topics {
			fmt.Fprintf(out, "%2d. %s\n", i+1, topic.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().String("category", "", "topic category (e.g. webDevelopment)")
	suggestCmd.Flags().Int("count", 5, "number of suggestions")
}
