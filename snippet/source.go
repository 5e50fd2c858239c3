package snippet

import (
	"fmt"
	"strings"
)

// UnionDelimiter separates the literals of a generated type union.
const UnionDelimiter = " | "

// Quote returns s as a single-quoted TypeScript string literal. Backslashes,
// quotes, line terminators and control characters are escaped, so the result
// never breaks the surrounding source.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// UntypedConstant renders the body of an icon module: an exported constant
// whose name field is the icon's type-name literal and whose data field holds
// the markup.
func UntypedConstant(variableName, typeName, markup string) string {
	name := Quote(typeName)
	return fmt.Sprintf("export const %s: { name: %s; data: string } = {\n  name: %s,\n  data: %s\n};\n",
		variableName, name, name, Quote(markup))
}

// FileName is the logical name of an icon module, without extension:
// "<prefix>-<name>.icon", or "<name>.icon" when prefix is empty.
func FileName(prefix, name string) string {
	if prefix == "" {
		return name + ".icon"
	}
	return prefix + "-" + name + ".icon"
}

// ExportStatement renders the index line re-exporting one icon module.
func ExportStatement(fileName, folderName string) string {
	return "export * from " + Quote("./"+folderName+"/"+fileName) + ";\n"
}

// TypeUnionHeader starts the declaration of the icon name union.
func TypeUnionHeader(typeName string) string {
	return "export type " + typeName + " = "
}

// InterfaceDefinition binds the name field of an icon to the union type.
func InterfaceDefinition(interfaceName, unionTypeName string) string {
	return fmt.Sprintf("\nexport interface %s {\n  name: %s;\n  data: string;\n}\n", interfaceName, unionTypeName)
}

// TypeUnion accumulates quoted type-name literals in the order they are
// added. The union is terminated when the number of added literals reaches
// the total announced up front, independent of how the caller iterates.
type TypeUnion struct {
	header    string
	delimiter string
	total     int
	added     int
	body      strings.Builder
}

// NewTypeUnion starts a union that expects exactly total literals.
func NewTypeUnion(header, delimiter string, total int) *TypeUnion {
	return &TypeUnion{
		header:    header,
		delimiter: delimiter,
		total:     total,
	}
}

// Add appends one literal, followed by the delimiter or, for the last
// expected literal, by the terminating semicolon.
func (u *TypeUnion) Add(typeName string) {
	if u.added > 0 {
		u.body.WriteString(u.delimiter)
	}
	u.added++
	u.body.WriteString(Quote(typeName))
	if u.added == u.total {
		u.body.WriteByte(';')
	}
}

// String returns the union declaration. A union without members is declared
// as never.
func (u *TypeUnion) String() string {
	if u.total == 0 {
		return u.header + "never;"
	}
	return u.header + u.body.String()
}
