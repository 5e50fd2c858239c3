package snippet

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// GoIcon is one entry of the generated Go bindings.
type GoIcon struct {
	VariableName string
	TypeName     string
	Markup       string
}

// GoIdentifier converts a TypeScript variable name into an exported Go
// identifier. strcase only understands ASCII, so words containing other
// runes are capitalized directly; combining marks are dropped because Go
// does not accept them in identifiers.
func GoIdentifier(variableName string) string {
	var b strings.Builder
	for _, word := range splitWords(variableName) {
		if isASCII(word) {
			b.WriteString(strcase.ToCamel(word))
			continue
		}
		for _, r := range capitalize(word) {
			if !unicode.IsMark(r) {
				b.WriteRune(r)
			}
		}
	}
	id := b.String()

	first, size := utf8.DecodeRuneInString(id)
	switch {
	case id == "":
		return "Icon"
	case !unicode.IsLetter(first):
		id = "Icon" + id
	case !unicode.IsUpper(first):
		if upper := unicode.ToUpper(first); upper != first {
			id = string(upper) + id[size:]
		} else {
			id = "Icon" + id
		}
	}

	// Icon and All are declared by the generated file itself.
	if id == "Icon" || id == "All" {
		id += "Icon"
	}
	return id
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// GoBindings renders a Go source file exposing every icon as an exported
// variable plus an All slice in discovery order. The output is meant to be
// passed through gofmt before it is written.
func GoBindings(pkg string, icons []GoIcon) string {
	var b strings.Builder
	b.WriteString("// Code generated by iconforge. DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	b.WriteString("// Icon is a named SVG icon.\n")
	b.WriteString("type Icon struct {\n\tName string\n\tData string\n}\n\n")

	names := make([]string, 0, len(icons))
	for _, icon := range icons {
		name := GoIdentifier(icon.VariableName)
		names = append(names, name)
		fmt.Fprintf(&b, "var %s = Icon{Name: %s, Data: %s}\n\n",
			name, strconv.Quote(icon.TypeName), strconv.Quote(icon.Markup))
	}

	b.WriteString("// All lists every icon in discovery order.\n")
	b.WriteString("var All = []Icon{\n")
	for _, name := range names {
		fmt.Fprintf(&b, "\t%s,\n", name)
	}
	b.WriteString("}\n")

	return b.String()
}
