package writer

import (
	"regexp"
	"strings"

	"draftforge/internal/logger"
)

// transitionMaxLen is the length under which a line matching a transition
// phrase is considered safe to delete. Longer matches are assumed to be
// real content that happens to contain the phrase.
const transitionMaxLen = 120

// defaultBlacklist holds phrase patterns characteristic of generated text.
// Matches are logged wherever they occur; removal only happens at the
// start of a sentence, removing a phrase mid-sentence would corrupt the
// grammar around it.
var defaultBlacklist = []string{
	`in today's fast-paced world`,
	`in today's digital age`,
	`in the ever-evolving landscape of \w+`,
	`it'?s important to note that`,
	`it is important to note that`,
	`it'?s worth noting that`,
	`as we all know`,
	`needless to say`,
	`at the end of the day`,
	`when it comes to \w+`,
	`in conclusion`,
	`to sum up`,
	`last but not least`,
	`without a doubt`,
	`unlock the (full )?potential of`,
	`harness the power of`,
	`dive into the world of`,
	`embark on a journey`,
}

var transitionPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)in this (section|article|post|chapter),? we`),
	regexp.MustCompile(`(?i)let'?s (now )?(take a )?(look|dive|explore|move on)`),
	regexp.MustCompile(`(?i)now that we('ve| have) (covered|seen|discussed)`),
	regexp.MustCompile(`(?i)in the (next|following) section`),
	regexp.MustCompile(`(?i)without further ado`),
	regexp.MustCompile(`(?i)as (we will|you'?ll) see (below|later|shortly)`),
	regexp.MustCompile(`(?i)moving on to`),
}

var (
	h1LineRe         = regexp.MustCompile(`^#\s`)
	headingLineRe    = regexp.MustCompile(`^#{1,6}\s`)
	genericHeadingRe = regexp.MustCompile(`(?i)^#{2,3}\s+(intro(duction)?|conclusion|final thoughts|wrapping up|summary|overview|faqs?|key takeaways)\s*:?\s*$`)
	blankRunRe       = regexp.MustCompile(`\n{3,}`)
	spaceRunRe       = regexp.MustCompile(` {2,}`)
	leadingIndentRe  = regexp.MustCompile(`^[ \t]*`)
)

// Cleaner applies the deterministic post-generation text pipeline. The
// blacklist is injected so the pattern list can change without touching
// pipeline logic.
type Cleaner struct {
	blacklist        []*regexp.Regexp
	sentenceInitials []*regexp.Regexp
}

// NewCleaner compiles a cleaner from blacklist patterns; nil means the
// default pattern set. Patterns are regular expressions matched
// case-insensitively.
func NewCleaner(patterns []string) *Cleaner {
	if patterns == nil {
		patterns = defaultBlacklist
	}

	c := &Cleaner{}
	for _, pattern := range patterns {
		c.blacklist = append(c.blacklist, regexp.MustCompile(`(?i)`+pattern))
		c.sentenceInitials = append(c.sentenceInitials,
			regexp.MustCompile(`(?i)(^|\n|\. )(?:`+pattern+`)[,:]?\s+`))
	}
	return c
}

// Cleanup runs the whole pipeline, in order. This is best-effort heuristic
// cleanup of generated text, not a guarantee that nothing slips through.
func (c *Cleaner) Cleanup(text string) string {
	text = stripTopLevelHeadings(text)
	text = stripGenericHeadings(text)
	text = stripTransitionLines(text)
	text = c.removeBlacklistedPhrases(text)
	text = collapseWhitespace(text)
	text = normalizeHeadingSpacing(text)
	return strings.TrimSpace(text)
}

// stripTopLevelHeadings drops H1 lines; the document title is injected
// separately downstream.
func stripTopLevelHeadings(text string) string {
	return filterLines(text, func(line string) bool {
		return !h1LineRe.MatchString(line)
	})
}

// stripGenericHeadings drops H2/H3 headings whose title is generic filler
// like "Introduction" or "FAQ".
func stripGenericHeadings(text string) string {
	return filterLines(text, func(line string) bool {
		return !genericHeadingRe.MatchString(line)
	})
}

// stripTransitionLines drops short lines that are pure meta commentary
// ("let's now look at..."). Lines at or above transitionMaxLen are kept
// even when they match, long lines are usually real content.
func stripTransitionLines(text string) string {
	return filterLines(text, func(line string) bool {
		if len(line) >= transitionMaxLen {
			return true
		}
		for _, phrase := range transitionPhrases {
			if phrase.MatchString(line) {
				return false
			}
		}
		return true
	})
}

// removeBlacklistedPhrases logs every blacklist match in the text, then
// removes the matches that start a sentence.
func (c *Cleaner) removeBlacklistedPhrases(text string) string {
	for i, pattern := range c.blacklist {
		if matches := pattern.FindAllString(text, -1); len(matches) > 0 {
			logger.Debug("Blacklisted phrase in generated text", "pattern", pattern.String(), "count", len(matches))
		}
		text = c.sentenceInitials[i].ReplaceAllString(text, "$1")
	}
	return text
}

// collapseWhitespace squeezes runs of 3+ blank lines down to one blank
// line and collapses repeated spaces within lines. Fenced code blocks and
// leading indentation keep their spacing.
func collapseWhitespace(text string) string {
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		indent := leadingIndentRe.FindString(line)
		lines[i] = indent + spaceRunRe.ReplaceAllString(line[len(indent):], " ")
	}
	return strings.Join(lines, "\n")
}

// normalizeHeadingSpacing rewrites the document so every heading line has
// exactly one blank line before and after it, collapsing blank runs along
// the way.
func normalizeHeadingSpacing(text string) string {
	lines := strings.Split(text, "\n")
	var out []string

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(out) == 0 || out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}

		if headingLineRe.MatchString(line) {
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			out = append(out, line, "")
			continue
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

func filterLines(text string, keep func(string) bool) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		if keep(line) {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
