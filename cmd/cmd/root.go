/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"draftforge/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "draftforge",
	Short: "Draftforge generates, scores and translates SEO blog articles.",
	Long: `Draftforge is a CLI for an article generation pipeline: it plans a
topic into an outline, writes and cleans the content, generates SEO
metadata, and can translate the finished article into multiple locales.

Trend discovery runs against ranked search backends (SerpAPI, Google
Custom Search, NewsAPI) when credentials are configured, with an offline
suggestion fallback.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.draftforge.yaml)")
}

// loadConfig resolves the configuration for a command run.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}
