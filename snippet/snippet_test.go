package snippet

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
)

func TestVariableName(t *testing.T) {
	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"app", "home", "appHome"},
		{"app", "settings", "appSettings"},
		{"app", "arrow-left", "appArrowLeft"},
		{"", "Home", "home"},
		{"my icon", "zoom in", "myIconZoomIn"},
		{"", "delete", "_delete"},
		{"", "3d-box", "_3dBox"},
		{"", "café", "café"},
		{"app", "日本", "app日本"},
		{"app", "star\u20dd", "appStar"},
		{"", "1\u20e3", "_1"},
		{"", "e\u0301t\u0301e", "e\u0301t\u0301e"},
		{"", "---", "_"},
		{"", "", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"/"+tt.name, func(t *testing.T) {
			got := VariableName(tt.prefix, tt.name)
			if got != tt.want {
				t.Errorf("VariableName(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		name      string
		delimiter string
		want      string
	}{
		{"home", "-", "Home"},
		{"arrow-left", "-", "ArrowLeft"},
		{"arrow_left", "-", "Arrowleft"},
		{"arrow_left", "_", "ArrowLeft"},
		{"zoom in", "-", "Zoomin"},
		{"3d", "-", "_3d"},
		{"élan-vital", "-", "ÉlanVital"},
		{"home", "", "Home"},
		{"", "-", "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeName(tt.name, tt.delimiter)
			if got != tt.want {
				t.Errorf("TypeName(%q, %q) = %q, want %q", tt.name, tt.delimiter, got, tt.want)
			}
		})
	}
}

func TestNamesAreIdentifiers(t *testing.T) {
	inputs := []string{
		"home", "arrow left", "a-b-c", "with.dots.inside", "100%", "ünïcödé",
		"日本語", "emoji-😀", "tab\tname", "quote'name", `back\slash`, "new",
		"\u0301accent", "", " ", "_", "$dollar", "star\u20dd", "1\u20e3",
		"\u20ddring", "a\u0903b",
	}

	for _, in := range inputs {
		for _, prefix := range []string{"", "pre"} {
			name := VariableName(prefix, in)
			if !IsIdentifier(name) {
				t.Errorf("VariableName(%q, %q) = %q is not an identifier", prefix, in, name)
			}
			source := UntypedConstant(name, TypeName(in, "-"), "<svg/>")
			result := api.Transform(source, api.TransformOptions{
				Loader: api.LoaderTS,
				Format: api.FormatESModule,
			})
			if len(result.Errors) > 0 {
				t.Errorf("VariableName(%q, %q) = %q did not compile: %s", prefix, in, name, result.Errors[0].Text)
			}
		}
		if got := TypeName(in, "-"); !IsIdentifier(got) {
			t.Errorf("TypeName(%q) = %q is not an identifier", in, got)
		}
		if VariableName("x", in) != VariableName("x", in) || TypeName(in, "-") != TypeName(in, "-") {
			t.Errorf("names for %q are not deterministic", in)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"appHome", true},
		{"e\u0301", true},
		{"a\u0903", true},
		{"star\u20dd", false},
		{"key\u20e3", false},
		{"\u0301a", false},
		{"1a", false},
		{"class", false},
	}

	for _, tt := range tests {
		if got := IsIdentifier(tt.in); got != tt.want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `'plain'`},
		{"it's", `'it\'s'`},
		{`a\b`, `'a\\b'`},
		{"l1\nl2\r\n", `'l1\nl2\r\n'`},
		{"tab\there", `'tab\there'`},
		{"\u2028\u2029", `'\u2028\u2029'`},
		{"\x00\x1b", `'\x00\x1b'`},
		{`"double"`, `'"double"'`},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestUntypedConstant(t *testing.T) {
	got := UntypedConstant("appHome", "Home", `<svg viewBox="0 0 24 24"/>`)
	want := "export const appHome: { name: 'Home'; data: string } = {\n" +
		"  name: 'Home',\n" +
		"  data: '<svg viewBox=\"0 0 24 24\"/>'\n" +
		"};\n"
	if got != want {
		t.Errorf("UntypedConstant mismatch.\nExpected: %q\nGot: %q", want, got)
	}
}

func TestUntypedConstantCompiles(t *testing.T) {
	markups := []string{
		`<svg xmlns="http://www.w3.org/2000/svg"><text>it's</text></svg>`,
		"<svg>\n  <path d=\"M0 0\"/>\r\n</svg>",
		`<svg><desc>C:\icons\${name}` + "`tick`" + `</desc></svg>`,
		"<svg>\u2028\u2029\x00</svg>",
	}

	for i, markup := range markups {
		source := UntypedConstant("appIcon", "Icon", markup)
		result := api.Transform(source, api.TransformOptions{
			Loader: api.LoaderTS,
			Format: api.FormatESModule,
		})
		if len(result.Errors) > 0 {
			t.Errorf("markup %d did not compile: %v\n%s", i, result.Errors[0].Text, source)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("app", "home"); got != "app-home.icon" {
		t.Errorf("FileName(app, home) = %q", got)
	}
	if got := FileName("", "home"); got != "home.icon" {
		t.Errorf("FileName(\"\", home) = %q", got)
	}
}

func TestExportStatement(t *testing.T) {
	got := ExportStatement("app-home.icon", "icons")
	want := "export * from './icons/app-home.icon';\n"
	if got != want {
		t.Errorf("ExportStatement = %q, want %q", got, want)
	}

	escaped := ExportStatement("app-it's.icon", "icons")
	if !strings.Contains(escaped, `'./icons/app-it\'s.icon'`) {
		t.Errorf("ExportStatement did not escape the path: %q", escaped)
	}
}

func TestTypeUnion(t *testing.T) {
	header := TypeUnionHeader("IconName")

	t.Run("scenario", func(t *testing.T) {
		u := NewTypeUnion(header, UnionDelimiter, 2)
		u.Add("Home")
		u.Add("Settings")
		want := "export type IconName = 'Home' | 'Settings';"
		if got := u.String(); got != want {
			t.Errorf("union = %q, want %q", got, want)
		}
	})

	t.Run("single", func(t *testing.T) {
		u := NewTypeUnion(header, UnionDelimiter, 1)
		u.Add("Home")
		if got := u.String(); got != "export type IconName = 'Home';" {
			t.Errorf("union = %q", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		u := NewTypeUnion(header, UnionDelimiter, 0)
		if got := u.String(); got != "export type IconName = never;" {
			t.Errorf("union = %q", got)
		}
	})

	t.Run("compiles with interface", func(t *testing.T) {
		u := NewTypeUnion(header, UnionDelimiter, 3)
		for _, name := range []string{"A", "B", "C"} {
			u.Add(name)
		}
		model := u.String() + "\n" + InterfaceDefinition("MyIcon", "IconName")
		result := api.Transform(model, api.TransformOptions{Loader: api.LoaderTS})
		if len(result.Errors) > 0 {
			t.Errorf("model did not compile: %v\n%s", result.Errors[0].Text, model)
		}
	})
}

func TestGoIdentifier(t *testing.T) {
	tests := map[string]string{
		"appHome":  "AppHome",
		"home":     "Home",
		"_delete":  "Delete",
		"all":      "AllIcon",
		"icon":     "IconIcon",
		"café":     "Café",
		"_":        "Icon",
		"日本":       "Icon日本",
	}

	for in, want := range tests {
		if got := GoIdentifier(in); got != want {
			t.Errorf("GoIdentifier(%q) = %q, want %q", in, got, want)
		}
	}

	if got := GoIdentifier("_3dBox"); !strings.HasPrefix(got, "Icon3") {
		t.Errorf("GoIdentifier(_3dBox) = %q, want Icon3 prefix", got)
	}
}

func TestGoBindings(t *testing.T) {
	src := GoBindings("icons", []GoIcon{
		{VariableName: "appHome", TypeName: "Home", Markup: "<svg>\"quoted\"\n</svg>"},
		{VariableName: "appSettings", TypeName: "Settings", Markup: "<svg/>"},
	})

	if _, err := parser.ParseFile(token.NewFileSet(), "icons.go", src, parser.AllErrors); err != nil {
		t.Fatalf("bindings do not parse: %v\n%s", err, src)
	}

	for _, want := range []string{
		"package icons",
		`var AppHome = Icon{Name: "Home", Data: "<svg>\"quoted\"\n</svg>"}`,
		"\tAppHome,\n\tAppSettings,\n",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("bindings missing %q:\n%s", want, src)
		}
	}
}
