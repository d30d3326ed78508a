package assemble

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSlugLen = 80

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe lowercase-hyphen identifier from a title.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = nonSlugRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
		if idx := strings.LastIndex(slug, "-"); idx > 0 {
			slug = slug[:idx]
		}
	}
	if slug == "" {
		slug = "article"
	}
	return slug
}

// UniqueSlug probes the store for a free slug: base, then base-1, base-2
// and so on. The read-then-write probe is racy under concurrent writers;
// a nil store takes every slug as free.
func UniqueSlug(store SlugStore, base string) (string, error) {
	if store == nil {
		return base, nil
	}

	candidate := base
	for i := 1; ; i++ {
		existing, err := store.FindBySlug(candidate)
		if err != nil {
			return "", fmt.Errorf("slug probe %q: %w", candidate, err)
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
