package widget

import (
	"regexp"
	"strings"
)

// defineCallPattern matches the head of a compiled class-field initializer
// up to and including the comma before the default value:
//
//	_defineProperty(this, "caption", ...
//	(0, _defineProperty2.default)(this, "caption", ...
//	__publicField(this, "caption", ...
//	_define_property(_this, "caption", ...
var defineCallPattern = regexp.MustCompile(
	`(?:\b_defineProperty\w*(?:\.default)?\)?|\b__publicField|\b_define_property)\s*\(\s*` +
		`(?:this|_this\d*|_assertThisInitialized\w*(?:\.default)?\)?\s*\(\s*_this\d*\s*\))\s*,\s*` +
		`(?:"([^"\\]+)"|'([^'\\]+)')\s*,`)

var (
	integerLiteral  = regexp.MustCompile(`^[-+]?\d+$`)
	functionKeyword = regexp.MustCompile(`\bfunction\b`)
)

// ExtractProperties returns one record per property initializer in text,
// in source order. Every record carries sourceFile.
func ExtractProperties(text, sourceFile string) []PropertyRecord {
	var props []PropertyRecord
	for _, m := range defineCallPattern.FindAllStringSubmatchIndex(text, -1) {
		name := submatch(text, m, 1)
		if name == "" {
			name = submatch(text, m, 2)
		}

		value, _ := scanExpression(text, m[1])
		props = append(props, PropertyRecord{
			Name:         name,
			Type:         InferType(value),
			Required:     false,
			DefaultValue: value,
			Description:  precedingComment(text, m[0]),
			SourceFile:   sourceFile,
		})
	}
	return props
}

func submatch(text string, loc []int, group int) string {
	if loc[2*group] < 0 {
		return ""
	}
	return text[loc[2*group]:loc[2*group+1]]
}

// InferType classifies a default value literal. The first matching row wins:
//
//	null, undefined, void 0     any
//	true, false, !0, !1         boolean
//	quoted string               string
//	bare integer                number
//	contains => or function     function
//	starts with [               array
//	starts with {               object
//	anything else               any
func InferType(literal string) InferredType {
	v := strings.TrimSpace(literal)
	switch {
	case v == "null" || v == "undefined" || v == "void 0":
		return TypeAny
	case v == "true" || v == "false" || v == "!0" || v == "!1":
		return TypeBoolean
	case isQuoted(v):
		return TypeString
	case integerLiteral.MatchString(v):
		return TypeNumber
	case strings.Contains(v, "=>") || functionKeyword.MatchString(v):
		return TypeFunction
	case strings.HasPrefix(v, "["):
		return TypeArray
	case strings.HasPrefix(v, "{"):
		return TypeObject
	default:
		return TypeAny
	}
}

func isQuoted(v string) bool {
	if len(v) < 2 {
		return false
	}
	q := v[0]
	return (q == '"' || q == '\'' || q == '`') && v[len(v)-1] == q
}

// scanExpression reads one argument expression starting at start and stops
// at the first top-level ',' or unbalanced closing bracket. Strings,
// comments and regular expression literals are skipped. It returns the trimmed text and the stop offset.
func scanExpression(text string, start int) (string, int) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch c := text[i]; c {
		case '"', '\'', '`':
			i = skipString(text, i)
		case '/':
			switch {
			case i+1 < len(text) && (text[i+1] == '/' || text[i+1] == '*'):
				i = skipComment(text, i)
			case regexAllowed(text[start:i]):
				i = skipRegex(text, i)
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return strings.TrimSpace(text[start:i]), i
			}
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(text[start:i]), i
			}
		}
	}
	return strings.TrimSpace(text[start:]), len(text)
}

// skipString returns the index of the quote closing the string opened at i.
func skipString(text string, i int) int {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j
		}
	}
	return len(text) - 1
}

// regexAllowed reports whether a '/' following before starts a regular
// expression literal rather than a division.
func regexAllowed(before string) bool {
	before = strings.TrimRight(before, " \t\r\n")
	if before == "" {
		return true
	}
	return strings.IndexByte("(,=:[!&|?{};+-*%<>~^", before[len(before)-1]) >= 0
}

// skipRegex returns the index of the '/' closing the regular expression
// literal opened at i. A '/' inside a character class does not close it.
func skipRegex(text string, i int) int {
	inClass := false
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				return j
			}
		case '\n':
			return j - 1
		}
	}
	return len(text) - 1
}

// skipComment returns the index of the last character of the comment
// starting at i.
func skipComment(text string, i int) int {
	if text[i+1] == '/' {
		if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
			return i + nl
		}
		return len(text) - 1
	}
	if end := strings.Index(text[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 1
	}
	return len(text) - 1
}

// precedingComment returns the comment directly above offset, if any:
// either one block comment or a run of line comments.
func precedingComment(text string, offset int) string {
	before := strings.TrimRight(text[:offset], " \t\r\n")
	// The CommonJS form is preceded by "(0, ".
	if trimmed := strings.TrimSuffix(before, "(0,"); trimmed != before {
		before = strings.TrimRight(trimmed, " \t\r\n")
	}

	if strings.HasSuffix(before, "*/") {
		open := strings.LastIndex(before, "/*")
		if open < 0 {
			return ""
		}
		return cleanBlockComment(before[open+2 : len(before)-2])
	}

	var lines []string
	for {
		nl := strings.LastIndexByte(before, '\n')
		line := strings.TrimSpace(before[nl+1:])
		if !strings.HasPrefix(line, "//") {
			break
		}
		lines = append([]string{strings.TrimSpace(strings.TrimPrefix(line, "//"))}, lines...)
		if nl < 0 {
			break
		}
		before = strings.TrimRight(before[:nl], " \t\r")
	}
	return strings.Join(lines, " ")
}

func cleanBlockComment(body string) string {
	var parts []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
