package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [slug]",
	Short: "Translate a stored article into the target locales",
	Long: `Load an article from the document store by slug, translate its title,
excerpt, content and SEO block into each target locale, and store the
multilingual result.

Target locales come from --locales or from the translation section of
the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		locales, _ := cmd.Flags().GetStringSlice("locales")
		if len(locales) == 0 {
			locales = cfg.Translation.TargetLocales
		}
		if len(locales) == 0 {
			return fmt.Errorf("no target locales: pass --locales or set translation.target_locales")
		}

		source, _ := cmd.Flags().GetString("source")
		if source == "" {
			source = cfg.Translation.SourceLocale
		}
		if source == "" {
			source = "en"
		}

		d, err := buildDeps(cfg, true)
		if err != nil {
			return err
		}
		defer d.Close()

		slug := args[0]
		article, err := d.store.FindBySlug(slug)
		if err != nil {
			return fmt.Errorf("loading article: %w", err)
		}
		if article == nil {
			return fmt.Errorf("no article with slug %q", slug)
		}

		multilingual, err := d.translator.TranslateArticle(cmd.Context(), *article, source, locales)
		if err != nil {
			return fmt.Errorf("translating article: %w", err)
		}

		id, err := d.store.InsertMultilingual(multilingual)
		if err != nil {
			return fmt.Errorf("saving translation: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Translated %q into %s\n", slug, strings.Join(multilingual.Locales, ", "))
		fmt.Fprintf(out, "Stored id: %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().StringSlice("locales", nil, "target locales (e.g. de,fr,es)")
	translateCmd.Flags().String("source", "", "source locale of the article (default from config, then en)")
}
