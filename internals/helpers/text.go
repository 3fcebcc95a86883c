package helper

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
)

var reRequirementSep = regexp.MustCompile(`[\n,;]`)
var reSpaces = regexp.MustCompile(`\s+`)

// SplitRequirements splits a requirements blob on newlines, commas and
// semicolons. limit <= 0 means no limit.
func SplitRequirements(raw string, limit int) []string {
	out := []string{}
	for _, part := range reRequirementSep.Split(raw, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// SplitTags splits a comma separated tag string.
func SplitTags(raw string) []string {
	out := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// HTMLToText strips markup, keeping text content with collapsed whitespace.
func HTMLToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	doc.Find("script,style").Remove()
	var parts []string
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.TrimSpace(reSpaces.ReplaceAllString(strings.Join(parts, " "), " "))
}

// Excerpt returns the first maxLen runes of the text content of body,
// cut on a word boundary when possible and suffixed with "...".
func Excerpt(body string, maxLen int) string {
	text := HTMLToText(body)
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	rs := []rune(text)[:maxLen-3]
	cut := string(rs)
	if i := strings.LastIndex(cut, " "); i > maxLen/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// SplitFullName splits on the first whitespace run.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

var fieldValidator = validator.New()

// IsValidEmail applies the validator "email" rule to a single value.
func IsValidEmail(email string) bool {
	return fieldValidator.Var(email, "required,email") == nil
}
