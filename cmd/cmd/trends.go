package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"draftforge/internal/trends"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "List trending topics for a category",
	Long: `Query the configured search backends for topics currently trending in
a category. Falls back to curated suggestions when no backend is
configured or nothing comes back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")

		d, err := buildDeps(cfg, false)
		if err != nil {
			return err
		}
		defer d.Close()

		topics, err := d.trends.TrendingTopics(cmd.Context(), category)
		if err != nil {
			return fmt.Errorf("fetching trending topics: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Trending in %s:\n\n", trends.CategoryLabel(category))
		for i, topic := range topics {
			fmt.Fprintf(out, "%2d. %s\n", i+1, topic.Title)
			if topic.Description != "" {
				fmt.Fprintf(out, "    %s\n", topic.Description)
			}
			if topic.URL != "" {
				fmt.Fprintf(out, "    %s\n", topic.URL)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trendsCmd)

	trendsCmd.Flags().String("category", "", "topic category (e.g. webDevelopment)")
}
