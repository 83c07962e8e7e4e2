package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Language describes one entry of the syntax highlighting table:
// which filenames it claims, its comment delimiters, its keyword and
// type lists, and which highlight features are enabled for it.
type Language struct {
	Name              string   `toml:"name"`
	Patterns          []string `toml:"patterns"`
	Keywords          []string `toml:"keywords"`
	Types             []string `toml:"types"`
	LineComment       string   `toml:"line-comment"`
	BlockCommentStart string   `toml:"block-comment-start"`
	BlockCommentEnd   string   `toml:"block-comment-end"`
	HighlightNumbers  bool     `toml:"highlight-numbers"`
	HighlightStrings  bool     `toml:"highlight-strings"`
}

type SyntaxTable struct {
	Languages []Language `toml:"language"`
}

// Match returns the first language whose pattern list claims path.
// A pattern starting with '.' matches the filename suffix, anything
// else matches as a substring of the base name. The table is
// priority-ordered: first match wins.
func (t SyntaxTable) Match(path string) *Language {
	if path == "" {
		return nil
	}
	base := filepath.Base(path)
	for i := range t.Languages {
		lang := &t.Languages[i]
		for _, pat := range lang.Patterns {
			if pat == "" {
				continue
			}
			if strings.HasPrefix(pat, ".") {
				if strings.HasSuffix(base, pat) {
					return lang
				}
			} else if strings.Contains(base, pat) {
				return lang
			}
		}
	}
	return nil
}

// Builtin returns the compiled-in syntax table.
func Builtin() SyntaxTable {
	return SyntaxTable{Languages: []Language{
		{
			Name:     "go",
			Patterns: []string{".go"},
			Keywords: []string{
				"break", "case", "chan", "const", "continue", "default",
				"defer", "else", "fallthrough", "for", "func", "go", "goto",
				"if", "import", "interface", "map", "package", "range",
				"return", "select", "struct", "switch", "type", "var",
			},
			Types: []string{
				"bool", "byte", "complex64", "complex128", "error", "float32",
				"float64", "int", "int8", "int16", "int32", "int64", "rune",
				"string", "uint", "uint8", "uint16", "uint32", "uint64",
				"uintptr",
			},
			LineComment:       "//",
			BlockCommentStart: "/*",
			BlockCommentEnd:   "*/",
			HighlightNumbers:  true,
			HighlightStrings:  true,
		},
		{
			Name:     "c",
			Patterns: []string{".c", ".h", ".cpp"},
			Keywords: []string{
				"switch", "if", "while", "for", "break", "continue", "return",
				"else", "struct", "union", "typedef", "static", "enum",
				"class", "case",
			},
			Types: []string{
				"int", "long", "double", "float", "char", "unsigned",
				"signed", "void",
			},
			LineComment:       "//",
			BlockCommentStart: "/*",
			BlockCommentEnd:   "*/",
			HighlightNumbers:  true,
			HighlightStrings:  true,
		},
	}}
}

// LoadSyntax returns the syntax table: user entries from
// languages.toml (if present) followed by the built-in entries, so a
// user pattern can shadow a built-in one.
func LoadSyntax() (SyntaxTable, error) {
	builtin := Builtin()
	path, err := SyntaxPath()
	if err != nil {
		return builtin, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return builtin, nil
		}
		return builtin, err
	}

	var user SyntaxTable
	if _, err := toml.Decode(string(data), &user); err != nil {
		return builtin, err
	}
	return SyntaxTable{Languages: append(user.Languages, builtin.Languages...)}, nil
}

func SyntaxPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
