package generators

import (
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/jakoblorz/go-scaffold/internal/models"
)

var projectPathPattern = regexp.MustCompile(`^[a-z0-9_][a-z0-9_.@-]*(/[a-z0-9_][a-z0-9_.@-]*)*$`)

// ProjectDirectory slugs name and the optional parent directory into the
// project directory below apps/ or libs/. Slugs that would leave that
// folder are configuration errors.
func ProjectDirectory(name, directory string) (string, error) {
	fileName := models.FileName(name)
	if err := checkSlug("name", name, fileName); err != nil {
		return "", err
	}

	dir := strings.Trim(directory, "/")
	if dir == "" {
		return fileName, nil
	}
	dirSlug := models.FileName(dir)
	if err := checkSlug("directory", directory, dirSlug); err != nil {
		return "", err
	}
	return path.Join(dirSlug, fileName), nil
}

func checkSlug(field, raw, slug string) error {
	for _, seg := range strings.Split(slug, "/") {
		if seg == "." || seg == ".." {
			return Configuration("Invalid %s %q: relative path segments are not allowed", field, raw)
		}
	}
	if !projectPathPattern.MatchString(slug) {
		return Configuration("Invalid %s %q: use letters, digits, spaces, '-', '_', '.' and '/' between non-empty segments", field, raw)
	}
	return nil
}

var javaKeywords = []string{
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char", "class", "const",
	"continue", "default", "do", "double", "else", "enum", "extends", "final", "finally", "float",
	"for", "goto", "if", "implements", "import", "instanceof", "int", "interface", "long", "native",
	"new", "package", "private", "protected", "public", "return", "short", "static", "strictfp",
	"super", "switch", "synchronized", "this", "throw", "throws", "transient", "try", "void",
	"volatile", "while",
}

// ValidatePackageName rejects Android package names with a Java keyword
// segment.
func ValidatePackageName(packageName string) error {
	for _, part := range strings.Split(packageName, ".") {
		if slices.Contains(javaKeywords, strings.ToLower(part)) {
			return Configuration(
				"Invalid package name: %q is a Java keyword. Package names cannot contain Java keywords like: %s. Please use a different project name or specify a custom --package-name.",
				part, strings.Join(javaKeywords, ", "))
		}
	}
	return nil
}
