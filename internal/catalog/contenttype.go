package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownContentType is returned by NormalizeContentType for values that are
// neither a known full name nor a known shorthand.
var ErrUnknownContentType = errors.New("invalid content type")

// ContentType pairs a full content type name with its single-letter shorthand.
type ContentType struct {
	Shorthand string
	Name      string
}

// contentTypes is the shorthand table in display order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var contentTypes = []ContentType{
	{Shorthand: "a", Name: "article"},
	{Shorthand: "b", Name: "bite"},
	{Shorthand: "p", Name: "podcast"},
	{Shorthand: "v", Name: "video"},
	{Shorthand: "t", Name: "tip"},
}

// ContentTypes returns a copy of the shorthand table.
func ContentTypes() []ContentType {
	out := make([]ContentType, len(contentTypes))
	copy(out, contentTypes)
	return out
}

// NormalizeContentType maps a shorthand or full name (any case) to the full name.
func NormalizeContentType(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, ct := range contentTypes {
		if v == ct.Shorthand || v == ct.Name {
			return ct.Name, nil
		}
	}
	return "", fmt.Errorf("%w %q, valid options are: %s", ErrUnknownContentType, value, ValidContentTypes())
}

// ValidContentTypes renders the table as "a: article, b: bite, ...".
func ValidContentTypes() string {
	pairs := make([]string, 0, len(contentTypes))
	for _, ct := range contentTypes {
		pairs = append(pairs, ct.Shorthand+": "+ct.Name)
	}
	return strings.Join(pairs, ", ")
}
