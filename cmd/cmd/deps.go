package cmd

import (
	"fmt"
	"time"

	"draftforge/internal/assemble"
	"draftforge/internal/config"
	"draftforge/internal/llm"
	"draftforge/internal/pace"
	"draftforge/internal/planner"
	"draftforge/internal/research"
	"draftforge/internal/search"
	"draftforge/internal/seo"
	"draftforge/internal/store"
	"draftforge/internal/translate"
	"draftforge/internal/trends"
	"draftforge/internal/writer"
)

// deps bundles the wired collaborators of a command run. Close releases
// the store handle.
type deps struct {
	cfg        *config.Config
	llm        *llm.Client
	aggregator *search.Aggregator
	generator  *assemble.Generator
	translator *translate.Translator
	trends     *trends.Service
	store      *store.Store
}

func (d *deps) Close() {
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "warning: closing store: %v\n", err)
		}
	}
}

// buildDeps wires the whole pipeline from configuration. withStore
// controls whether the document store is opened; commands that never
// persist skip it.
func buildDeps(cfg *config.Config, withStore bool) (*deps, error) {
	client, err := llm.NewClient(cfg.AI)
	if err != nil {
		return nil, err
	}

	providers := search.RankedProviders(cfg.Search.Providers)
	aggregator := search.NewAggregator(providers...)

	var news search.Provider
	for _, p := range providers {
		if p.Name() == "newsapi" {
			news = p
		}
	}

	d := &deps{
		cfg:        cfg,
		llm:        client,
		aggregator: aggregator,
		translator: translate.New(client),
		trends:     trends.NewService(aggregator, news, cfg.Search.MaxResults, cfg.Search.Language),
	}

	if withStore {
		d.store, err = store.NewStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("opening store: %w", err)
		}
	}

	var slugStore assemble.SlugStore
	if d.store != nil {
		slugStore = d.store
	}

	d.generator = assemble.NewGenerator(assemble.Deps{
		Planner:  planner.New(client),
		Writer:   writer.New(client),
		SEO:      seo.NewGenerator(client),
		Research: research.NewGatherer(aggregator),
		Store:    slugStore,
		Author:   cfg.Generation.Author,
	})

	return d, nil
}

// batchPacer builds the inter-article pacer from configuration.
func batchPacer(cfg *config.Config) pace.Pacer {
	delay, err := time.ParseDuration(cfg.Generation.BatchDelay)
	if err != nil || delay <= 0 {
		return pace.None{}
	}
	return pace.NewFixedDelay(delay)
}

// generateOptions maps config plus command flags to pipeline options.
func generateOptions(cfg *config.Config, category, language string, researchOnline, publish bool) assemble.Options {
	if language == "" {
		language = cfg.Generation.Language
	}
	return assemble.Options{
		Category:       category,
		Language:       language,
		TargetWords:    cfg.Generation.TargetWords,
		ResearchOnline: researchOnline || cfg.Generation.ResearchOnline,
		AutoPublish:    publish,
	}
}
