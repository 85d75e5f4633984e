// Package naming derives artifact names from CMS component identifiers.
//
// A component identifier has the form <namespace>.<kebab-case-name>, e.g.
// "sections.hero-banner". The GraphQL type a CMS exposes for a component
// concatenates every segment: "ComponentSectionsHeroBanner".
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/oops"
)

// Names holds the identifiers derived from one component identifier.
type Names struct {
	// DisplayName is the PascalCase component name without its namespace,
	// e.g. "HeroBanner" for "sections.hero-banner".
	DisplayName string

	// TypeName is the GraphQL type the fragment targets. It always begins
	// with "Component" and includes the namespace, e.g.
	// "ComponentSectionsHeroBanner".
	TypeName string

	// FileStem is DisplayName with its first character lowered. Used for
	// generated file names and the barrel import path.
	FileStem string
}

// Validate checks that id is a well-formed component identifier: at least one
// dot separator, no empty dot segment, no empty hyphen token.
func Validate(id string) error {
	errb := oops.Code("INVALID_IDENTIFIER").With("component", id)

	segments := strings.Split(id, ".")
	if len(segments) < 2 {
		return errb.Errorf("component identifier %q must have the form <namespace>.<name>", id)
	}
	for _, seg := range segments {
		if seg == "" {
			return errb.Errorf("component identifier %q has an empty segment", id)
		}
		for _, token := range strings.Split(seg, "-") {
			if token == "" {
				return errb.Errorf("component identifier %q has an empty hyphen token", id)
			}
		}
	}
	return nil
}

// Derive computes the names for a component identifier. It is pure and total
// over identifiers accepted by Validate.
func Derive(id string) (Names, error) {
	if err := Validate(id); err != nil {
		return Names{}, err
	}

	all := strings.FieldsFunc(id, func(r rune) bool { return r == '.' || r == '-' })
	display := pascal(strings.Split(strings.Split(id, ".")[1], "-"))

	return Names{
		DisplayName: display,
		TypeName:    "Component" + pascal(all),
		FileStem:    lowerFirst(display),
	}, nil
}

func pascal(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(upperFirst(p))
	}
	return b.String()
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
