package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"draftforge/internal/assemble"
	"draftforge/internal/logger"
)

var batchCmd = &cobra.Command{
	Use:   "batch [topic ...]",
	Short: "Generate articles for several topics in sequence",
	Long: `Run the generation pipeline for each topic in order, pausing between
items according to the configured batch delay. Topics come from the
arguments or from a file with one topic per line (--file).

A failed topic is recorded and the batch moves on; the command exits
non-zero when any topic failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		topicsFile, _ := cmd.Flags().GetString("file")
		topics, err := collectTopics(args, topicsFile)
		if err != nil {
			return err
		}
		if len(topics) == 0 {
			return fmt.Errorf("no topics given: pass topics as arguments or use --file")
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
		result := d.generator.GenerateBatch(cmd.Context(), topics, opts, batchPacer(cfg))

		out := cmd.OutOrStdout()
		for i := range result.Articles {
			article := result.Articles[i]
			if save {
				id, err := d.store.InsertArticle(article)
				if err != nil {
					logger.Error("Failed to save article", err, "slug", article.Slug)
					result.Errors = append(result.Errors, assemble.BatchError{Topic: article.Slug, Err: err})
					continue
				}
				article.ID = id
			}
			fmt.Fprintf(out, "ok   %-40s %d words\n", article.Slug, article.WordCount())
		}
		for _, batchErr := range result.Errors {
			fmt.Fprintf(out, "fail %v\n", batchErr)
		}
		fmt.Fprintf(out, "\n%d generated, %d failed\n", len(result.Articles), len(result.Errors))

		if len(result.Errors) > 0 {
			return fmt.Errorf("%d of %d topics failed", len(result.Errors), len(topics))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().String("file", "", "file with one topic per line")
	batchCmd.Flags().String("category", "", "topic category applied to every item")
	batchCmd.Flags().String("language", "", "article locale (default from config)")
	batchCmd.Flags().Bool("research", false, "gather online context before planning")
	batchCmd.Flags().Bool("publish", false, "mark generated articles published")
	batchCmd.Flags().Bool("save", false, "persist generated articles to the document store")
}

// collectTopics merges argument topics with the lines of an optional
// topics file, skipping blank lines and # comments.
func collectTopics(args []string, path string) ([]string, error) {
	topics := make([]string, 0, len(args))
	for _, arg := range args {
		if t := strings.TrimSpace(arg); t != "" {
			topics = append(topics, t)
		}
	}
	if path == "" {
		return topics, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening topics file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		topics = append(topics, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading topics file: %w", err)
	}
	return topics, nil
}
