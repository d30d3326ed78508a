package trends

import (
	"fmt"
	"math/rand"
	"time"

	"draftforge/internal/core"
)

// categoryKeywords are the static seed terms used when no search backend
// can supply real trends.
var categoryKeywords = map[string][]string{
	"webDevelopment": {
		"React Server Components", "htmx", "TypeScript 6", "edge rendering",
		"web performance budgets", "CSS container queries", "Astro", "progressive web apps",
	},
	"artificialIntelligence": {
		"retrieval-augmented generation", "small language models", "AI agents",
		"prompt engineering", "model fine-tuning", "vector databases", "multimodal models",
	},
	"cybersecurity": {
		"zero trust architecture", "supply chain security", "passkeys",
		"ransomware defense", "secrets management", "SBOM adoption",
	},
	"cloudComputing": {
		"serverless containers", "FinOps", "multi-cloud networking",
		"Kubernetes operators", "platform engineering", "edge computing",
	},
	"devops": {
		"GitOps", "observability pipelines", "progressive delivery",
		"infrastructure as code", "internal developer platforms", "SLO-driven alerting",
	},
}

// categoryLabels maps category identifiers to human-readable labels used in
// prompts and queries.
var categoryLabels = map[string]string{
	"webDevelopment":         "web development",
	"artificialIntelligence": "artificial intelligence",
	"cybersecurity":          "cybersecurity",
	"cloudComputing":         "cloud computing",
	"devops":                 "DevOps",
}

// topicTemplates turn a keyword into a plausible article topic.
var topicTemplates = []string{
	"What %s means for your team in practice",
	"A practical guide to %s",
	"%s: common mistakes and how to avoid them",
	"How to get started with %s",
	"Why %s is changing the way we build software",
	"%s explained for busy developers",
}

// CategoryLabel returns the human-readable label for a category
// identifier, or the identifier itself when it is unknown, or "" when
// empty.
func CategoryLabel(category string) string {
	if category == "" {
		return ""
	}
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// Categories lists the known category identifiers.
func Categories() []string {
	return []string{
		"webDevelopment",
		"artificialIntelligence",
		"cybersecurity",
		"cloudComputing",
		"devops",
	}
}

// SuggestTopics synthesizes up to n plausible topics for a category from
// the static keyword lists and sentence templates, with randomized
// selection. It is a pure fallback: no network involved.
func SuggestTopics(category string, n int) []core.TrendingTopic {
	if n <= 0 {
		n = 5
	}

	keywords := categoryKeywords[category]
	if len(keywords) == 0 {
		// unknown or empty category: draw from every list
		for _, list := range categoryKeywords {
			keywords = append(keywords, list...)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	perm := rng.Perm(len(keywords))

	var topics []core.TrendingTopic
	for _, idx := range perm {
		if len(topics) == n {
			break
		}
		keyword := keywords[idx]
		template := topicTemplates[rng.Intn(len(topicTemplates))]
		topics = append(topics, core.TrendingTopic{
			Title:       fmt.Sprintf(template, keyword),
			Description: "Synthesized suggestion seeded by the keyword " + keyword,
			Source:      "suggestion",
		})
	}

	return topics
}
