package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"draftforge/internal/core"
	"draftforge/internal/seo"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate one article from a topic",
	Long: `Run the full pipeline for a single topic: optional online research,
outline planning, content writing, cleanup, and SEO metadata.

Example:
  draftforge generate "What's new in framework X" --category webDevelopment
  draftforge generate "Sizing connection pools" --research --publish --save`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		language, _ := cmd.Flags().GetString("language")
		researchOnline, _ := cmd.Flags().GetBool("research")
		publish, _ := cmd.Flags().GetBool("publish")
		save, _ := cmd.Flags().GetBool("save")

		d, err := buildDeps(cfg, save)
		if err != nil {
			return err
		}
		defer d.Close()

		opts := generateOptions(cfg, category, language, researchOnline, publish)
		article, err := d.generator.Generate(cmd.Context(), args[0], opts)
		if err != nil {
			return fmt.Errorf("generating article: %w", err)
		}

		if save {
			id, err := d.store.InsertArticle(article)
			if err != nil {
				return fmt.Errorf("saving article: %w", err)
			}
			article.ID = id
		}

		printArticle(cmd, article, save)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("category", "", "topic category (e.g. webDevelopment)")
	generateCmd.Flags().String("language", "", "article locale (default from config)")
	generateCmd.Flags().Bool("research", false, "gather online context before planning")
	generateCmd.Flags().Bool("publish", false, "mark the article published immediately")
	generateCmd.Flags().Bool("save", false, "persist the article to the document store")
}

func printArticle(cmd *cobra.Command, article core.Article, saved bool) {
	out := cmd.OutOrStdout()
	score := seo.Score(article)

	fmt.Fprintf(out, "Title:        %s\n", article.Title)
	fmt.Fprintf(out, "Slug:         %s\n", article.Slug)
	fmt.Fprintf(out, "Status:       %s\n", article.Status)
	fmt.Fprintf(out, "Words:        %d (~%d min)\n", article.WordCount(), article.ReadingTime)
	fmt.Fprintf(out, "SEO score:    %d/100 (%s)\n", score.Total, score.Level)
	if article.ID != "" {
		fmt.Fprintf(out, "Stored id:    %s\n", article.ID)
	} else if !saved {
		fmt.Fprintln(out, "Not persisted (run with --save to store).")
	}
	fmt.Fprintln(out, strings.Repeat("-", 60))
	fmt.Fprintf(out, "# %s\n\n%s\n", article.Title, article.Content)
}
