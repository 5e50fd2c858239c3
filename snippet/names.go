// Package snippet turns icon file names and optimized markup into the
// TypeScript fragments that make up the generated icon library.
//
// Every function in this package is pure: the same input always yields the
// same output and nothing touches the filesystem. Names are built from words,
// where a word is a maximal run of Unicode letters, digits and combining
// marks; everything else in a file name is treated as a separator.
package snippet

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var reservedWords = map[string]bool{
	"arguments": true, "await": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "eval": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true,
	"void": true, "while": true, "with": true, "yield": true,
}

// VariableName builds the exported constant name for an icon: the words of
// prefix in lower camel case followed by the capitalized words of name.
//
//	VariableName("app", "arrow-left") == "appArrowLeft"
//	VariableName("", "Home") == "home"
func VariableName(prefix, name string) string {
	words := append(splitWords(prefix), splitWords(name)...)

	var b strings.Builder
	for i, word := range words {
		if i == 0 {
			b.WriteString(lowerFirst(word))
			continue
		}
		b.WriteString(capitalize(word))
	}

	return identifier(b.String())
}

// TypeName builds the type-name literal for an icon. The name is split on
// delimiter and every part is capitalized and concatenated; characters that
// cannot appear in an identifier are dropped from each part.
//
//	TypeName("arrow-left", "-") == "ArrowLeft"
//	TypeName("arrow_left", "-") == "Arrowleft"
func TypeName(name, delimiter string) string {
	parts := []string{name}
	if delimiter != "" {
		parts = strings.Split(name, delimiter)
	}

	var b strings.Builder
	for _, part := range parts {
		b.WriteString(capitalize(strings.Join(splitWords(part), "")))
	}

	return identifier(b.String())
}

// IsIdentifier reports whether s can be used as a TypeScript identifier.
func IsIdentifier(s string) bool {
	if s == "" || reservedWords[s] {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (unicode.IsDigit(r) || isCombiningMark(r)) {
			continue
		}
		return false
	}
	return true
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || isCombiningMark(r)
}

// isCombiningMark excludes enclosing marks, which cannot continue an
// identifier.
func isCombiningMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Mc)
}

// identifier repairs a word concatenation that does not start with a letter
// or collides with a reserved word.
func identifier(s string) string {
	if s == "" {
		return "_"
	}
	first, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(first) || reservedWords[s] {
		return "_" + s
	}
	return s
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + word[size:]
}

func lowerFirst(word string) string {
	if word == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToLower(r)) + word[size:]
}
