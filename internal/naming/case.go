package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// TextCase is a target letter case for ChangeCase.
type TextCase string

const (
	CaseCamel          TextCase = "camel"     // camelCase
	CasePascal         TextCase = "pascal"    // PascalCase
	CaseSnake          TextCase = "snake"     // snake_case
	CaseScreamingSnake TextCase = "screaming" // SCREAMING_SNAKE
	CaseKebab          TextCase = "kebab"     // kebab-case
	CaseUpper          TextCase = "upper"
	CaseLower          TextCase = "lower"
	CaseTitle          TextCase = "title" // Title Case
)

var textCases = []TextCase{
	CaseCamel, CasePascal, CaseSnake, CaseScreamingSnake,
	CaseKebab, CaseUpper, CaseLower, CaseTitle,
}

// ParseTextCase validates s as a TextCase name.
func ParseTextCase(s string) (TextCase, error) {
	c := TextCase(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range textCases {
		if c == v {
			return c, nil
		}
	}
	return "", errors.Errorf("invalid case %q", s)
}

// ChangeCase rewrites the name in Case. Capitalize upper-cases the first
// letter of the result.
type ChangeCase struct {
	noPrepare
	Case       TextCase
	Capitalize bool
}

func (t *ChangeCase) Apply(r *FileRecord) {
	if strings.TrimSpace(r.Name) == "" {
		return
	}
	out := convertCase(r.Name, t.Case)
	if t.Capitalize {
		out = upperFirst(out)
	}
	r.NewName = out
}

func convertCase(s string, c TextCase) string {
	switch c {
	case CaseUpper:
		return strings.ToUpper(s)
	case CaseLower:
		return strings.ToLower(s)
	}

	words := splitWords(s)
	for i, w := range words {
		switch c {
		case CaseCamel:
			if i == 0 {
				words[i] = strings.ToLower(w)
			} else {
				words[i] = upperFirst(strings.ToLower(w))
			}
		case CasePascal, CaseTitle:
			words[i] = upperFirst(strings.ToLower(w))
		case CaseScreamingSnake:
			words[i] = strings.ToUpper(w)
		default:
			words[i] = strings.ToLower(w)
		}
	}

	switch c {
	case CaseSnake, CaseScreamingSnake:
		return strings.Join(words, "_")
	case CaseKebab:
		return strings.Join(words, "-")
	case CaseTitle:
		return strings.Join(words, " ")
	case CaseCamel, CasePascal:
		return strings.Join(words, "")
	}
	return s
}

// splitWords breaks s on separators ("_", "-", ".", white space), on a
// lower-to-upper change and between digits and non-digits.
func splitWords(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		if r == '_' || r == '-' || r == '.' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if n := len(cur); n > 0 {
			prev := cur[n-1]
			if (unicode.IsLower(prev) && unicode.IsUpper(r)) || unicode.IsDigit(prev) != unicode.IsDigit(r) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
