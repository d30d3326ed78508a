package seo

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"draftforge/internal/core"
)

// Score rates an assembled article against a fixed rubric. It is a pure
// function over article fields; all range bounds are inclusive.
func Score(article core.Article) core.SEOScore {
	var score core.SEOScore

	score.Title = scoreRange(runeLen(article.Title), 30, 70, 20, 80, 20, 15, 10,
		"title length outside the optimal 30-70 character range", &score.Feedback)

	score.MetaTitle = scoreRange(runeLen(article.SEO.MetaTitle), 50, 60, 40, 65, 15, 12, 8,
		"meta title length outside the optimal 50-60 character range", &score.Feedback)

	score.MetaDescription = scoreRange(runeLen(article.SEO.MetaDescription), 150, 160, 120, 170, 15, 12, 8,
		"meta description length outside the optimal 150-160 character range", &score.Feedback)

	score.Keywords = scoreRange(keywordCount(article.SEO.Keywords), 5, 8, 3, 10, 15, 12, 8,
		"keyword count outside the optimal 5-8 range", &score.Feedback)

	score.Content = scoreContent(article.WordCount(), &score.Feedback)
	score.Structure = scoreStructure(article.Content, &score.Feedback)

	score.Total = score.Title + score.MetaTitle + score.MetaDescription +
		score.Keywords + score.Content + score.Structure
	score.Level = level(score.Total)

	return score
}

// scoreRange buckets n into optimal / acceptable / poor tiers with
// inclusive bounds, appending feedback for anything below optimal.
func scoreRange(n, optLo, optHi, okLo, okHi, optPts, okPts, poorPts int, feedback string, out *[]string) int {
	switch {
	case n >= optLo && n <= optHi:
		return optPts
	case n >= okLo && n <= okHi:
		*out = append(*out, feedback)
		return okPts
	default:
		*out = append(*out, feedback)
		return poorPts
	}
}

func scoreContent(words int, feedback *[]string) int {
	switch {
	case words >= 1500 && words <= 2500:
		return 20
	case words >= 1000 && words <= 3000:
		*feedback = append(*feedback, "content length outside the optimal 1500-2500 word range")
		return 15
	case words >= 500:
		*feedback = append(*feedback, fmt.Sprintf("content is %d words, aim for 1500-2500", words))
		return 10
	default:
		*feedback = append(*feedback, fmt.Sprintf("content is too short at %d words", words))
		return 5
	}
}

func scoreStructure(content string, feedback *[]string) int {
	h2, h3 := countHeadings(content)

	var pts int
	switch {
	case h2 >= 4 && h2 <= 8:
		pts = 10
	case h2 >= 2:
		feedbackAppend(feedback, "aim for 4-8 H2 sections, found %d", h2)
		pts = 6
	default:
		feedbackAppend(feedback, "too few H2 sections, found %d", h2)
		pts = 3
	}

	if h3 >= 2 {
		pts += 5
	} else {
		feedbackAppend(feedback, "add H3 subsections for depth, found %d", h3)
		pts += 2
	}

	return pts
}

func feedbackAppend(feedback *[]string, format string, args ...any) {
	*feedback = append(*feedback, fmt.Sprintf(format, args...))
}

func level(total int) string {
	switch {
	case total >= 90:
		return "excellent"
	case total >= 75:
		return "good"
	case total >= 60:
		return "acceptable"
	case total >= 40:
		return "needs improvement"
	default:
		return "weak"
	}
}

func countHeadings(content string) (h2, h3 int) {
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			h3++
		case strings.HasPrefix(line, "## "):
			h2++
		}
	}
	return h2, h3
}

func keywordCount(keywords string) int {
	if strings.TrimSpace(keywords) == "" {
		return 0
	}
	count := 0
	for _, term := range strings.Split(keywords, ",") {
		if strings.TrimSpace(term) != "" {
			count++
		}
	}
	return count
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
