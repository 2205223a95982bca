package models

import (
	"regexp"
	"strings"
	"unicode"
)

// Names holds the casings derived from a project name.
type Names struct {
	Name         string
	ClassName    string
	PropertyName string
	ConstantName string
	FileName     string
}

var camelBoundary = regexp.MustCompile(`([a-z\d])([A-Z])`)

// NewNames derives all casings of name: "my-app" gives MyApp, myApp,
// MY_APP and my-app.
func NewNames(name string) Names {
	return Names{
		Name:         name,
		ClassName:    ClassName(name),
		PropertyName: PropertyName(name),
		ConstantName: ConstantName(name),
		FileName:     FileName(name),
	}
}

// FileName converts s to kebab-case. A leading underscore is kept.
func FileName(s string) string {
	s = strings.ToLower(camelBoundary.ReplaceAllString(s, "$1-$2"))

	var b strings.Builder
	for i, r := range s {
		if r == ' ' || (r == '_' && i > 0) {
			b.WriteRune('-')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PropertyName converts s to lowerCamelCase.
func PropertyName(s string) string {
	var b strings.Builder
	upperNext := false
	for _, r := range s {
		if !isAlnum(r) {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}

	out := []rune(b.String())
	if len(out) > 0 && out[0] >= 'A' && out[0] <= 'Z' {
		out[0] = unicode.ToLower(out[0])
	}
	return string(out)
}

// ClassName converts s to UpperCamelCase.
func ClassName(s string) string {
	p := []rune(PropertyName(s))
	if len(p) > 0 {
		p[0] = unicode.ToUpper(p[0])
	}
	return string(p)
}

// ConstantName converts s to UPPER_SNAKE_CASE.
func ConstantName(s string) string {
	if strings.ToUpper(s) == s {
		s = strings.ToLower(s)
	}
	f := FileName(PropertyName(s))

	var b strings.Builder
	for _, r := range f {
		if !isAlnum(r) {
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// Underscored replaces hyphens with underscores, as Python modules and
// Java packages need.
func Underscored(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// ParseTags splits a comma separated tag list. Entries are trimmed and
// empty entries dropped; empty input gives an empty slice.
func ParseTags(s string) []string {
	tags := []string{}
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
