package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"draftforge/internal/assemble"
	"draftforge/internal/core"
	"draftforge/internal/seo"
)

var scoreCmd = &cobra.Command{
	Use:   "score [file.md]",
	Short: "Score a markdown article for SEO quality",
	Long: `Read a markdown file, treat its first H1 as the title and the rest as
the content, and print the SEO score breakdown. The score is computed
locally without calling any model or backend.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading article file: %w", err)
		}

		article := articleFromMarkdown(string(data))
		score := seo.Score(article)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Scoring: %s\n\n", article.Title)
		fmt.Fprintf(out, "Title            %2d/20\n", score.Title)
		fmt.Fprintf(out, "Meta title       %2d/15\n", score.MetaTitle)
		fmt.Fprintf(out, "Meta description %2d/15\n", score.MetaDescription)
		fmt.Fprintf(out, "Keywords         %2d/15\n", score.Keywords)
		fmt.Fprintf(out, "Content length   %2d/20\n", score.Content)
		fmt.Fprintf(out, "Structure        %2d/15\n", score.Structure)
		fmt.Fprintf(out, "\nTotal: %d/100 (%s)\n", score.Total, score.Level)
		if len(score.Feedback) > 0 {
			fmt.Fprintln(out, "\nSuggestions:")
			for _, item := range score.Feedback {
				fmt.Fprintf(out, "  - %s\n", item)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

// articleFromMarkdown builds a scoreable article from a raw markdown
// document. The first H1 becomes the title and the SEO fields are
// synthesized from the content, so the structural and length
// dimensions of the score are the meaningful ones.
func articleFromMarkdown(doc string) core.Article {
	var title string
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			lines = append(lines[:i], lines[i+1:]...)
			break
		}
	}
	content := strings.TrimSpace(strings.Join(lines, "\n"))
	if title == "" {
		title = clampRunes(strings.TrimSpace(firstLine(content)), 80)
	}

	plain := seo.StripMarkdown(content)
	return core.Article{
		Title:   title,
		Slug:    assemble.Slugify(title),
		Content: content,
		Excerpt: clampRunes(plain, 200),
		SEO: core.SEOMeta{
			MetaTitle:       clampRunes(title, 60),
			MetaDescription: clampRunes(plain, 160),
		},
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func clampRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
