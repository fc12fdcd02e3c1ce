package engine

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/rshade/pybites-search/internal/catalog"
)

// termJoin matches any run of characters between consecutive search terms.
const termJoin = ".*"

// CompileSearch builds the case-insensitive pattern for the given terms.
// Each term is matched literally; terms must appear in the given order with
// anything in between. Blank terms are ignored.
func CompileSearch(terms []string) (*regexp.Regexp, error) {
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(term))
	}
	if len(quoted) == 0 {
		return nil, &InputError{Err: ErrNoSearchTerm}
	}

	re, err := regexp.Compile("(?i)" + strings.Join(quoted, termJoin))
	if err != nil {
		return nil, fmt.Errorf("compiling search pattern: %w", err)
	}
	return re, nil
}

// Predicate is a compiled search over catalog items.
type Predicate struct {
	pattern     *regexp.Regexp
	contentType string
	titleOnly   bool
}

// NewPredicate validates the content type (shorthand or full name, empty for
// none) and compiles the terms. An invalid content type is rejected before the
// terms are looked at.
func NewPredicate(terms []string, contentType string, titleOnly bool) (*Predicate, error) {
	var normalized string
	if strings.TrimSpace(contentType) != "" {
		ct, err := catalog.NormalizeContentType(contentType)
		if err != nil {
			return nil, &InputError{Err: err}
		}
		normalized = ct
	}

	pattern, err := CompileSearch(terms)
	if err != nil {
		return nil, err
	}

	return &Predicate{pattern: pattern, contentType: normalized, titleOnly: titleOnly}, nil
}

// ContentType returns the normalized filter, or "" when none was given.
func (p *Predicate) ContentType() string { return p.contentType }

// TitleOnly reports whether the summary is excluded from matching.
func (p *Predicate) TitleOnly() bool { return p.titleOnly }

// Pattern returns the compiled expression.
func (p *Predicate) Pattern() *regexp.Regexp { return p.pattern }

// ShowType reports whether results should carry their own type label.
// Without a filter the results may mix types.
func (p *Predicate) ShowType() bool { return p.contentType == "" }

// Match reports whether item satisfies both the text and the type constraint.
func (p *Predicate) Match(item catalog.Item) bool {
	if p.contentType != "" && !equalFold(p.contentType, item.ContentType) {
		return false
	}
	if p.pattern.MatchString(item.Title) {
		return true
	}
	return !p.titleOnly && p.pattern.MatchString(item.Summary)
}

// Filter returns the matching items in their original order.
func (p *Predicate) Filter(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if p.Match(item) {
			out = append(out, item)
		}
	}
	return out
}

// equalFold compares with full Unicode case folding. A Caser is stateful, so each call gets its own.
func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
