package parser

import (
	"path/filepath"
	"strings"
)

// Language represents a grammar the parser manager can load.
type Language int

const (
	// LanguageTypeScript covers .ts/.mts/.cts and, with the TSX variant, .tsx.
	LanguageTypeScript Language = iota
	// LanguageJavaScript covers compiled output: .js, .jsx, .mjs, .cjs.
	LanguageJavaScript
	// LanguageUnknown represents an unsupported file.
	LanguageUnknown
)

// String returns the string representation of the language.
func (l Language) String() string {
	switch l {
	case LanguageTypeScript:
		return "typescript"
	case LanguageJavaScript:
		return "javascript"
	default:
		return "unknown"
	}
}

// DetectLanguage detects the grammar for a file path from its extension.
// Returns LanguageUnknown if the extension is not recognized.
func DetectLanguage(filePath string) Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".mts", ".cts", ".tsx":
		return LanguageTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// IsTSXFile reports whether a path needs the TSX variant of the TypeScript grammar.
func IsTSXFile(filePath string) bool {
	return strings.ToLower(filepath.Ext(filePath)) == ".tsx"
}

// SourceExtensions lists the extensions probed when an import specifier
// omits one, in probing order. Compiled output comes first.
func SourceExtensions() []string {
	return []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}
}

// ParseLanguageString converts a language string to a Language type.
// Returns LanguageUnknown if the string is not recognized.
func ParseLanguageString(lang string) Language {
	switch strings.ToLower(lang) {
	case "typescript", "ts":
		return LanguageTypeScript
	case "javascript", "js":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}
