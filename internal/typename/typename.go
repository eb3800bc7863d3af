// Package typename reconstructs the exact name text used by C++ symbol
// tables for template instances.
//
// Symbol lookups must match the target binary byte for byte. The tricky
// case is a non-type template parameter: the debugger reports the argument
// as a bare number ("8"), but the symbol name encodes its type with an
// ABI-mandated literal suffix ("8ul" for unsigned long).
package typename

import (
	"fmt"
	"strings"
)

// Normalize strips the template argument list from a qualified type name:
// "csg::slist_head<Item, csg::no_size>" becomes "csg::slist_head". Names
// without template arguments are returned unchanged.
func Normalize(name string) string {
	if i := strings.IndexByte(name, '<'); i >= 0 {
		return name[:i]
	}
	return name
}

// SplitTemplateArgs returns the top-level template argument texts of a
// template instance name, honoring nested angle brackets and parentheses:
// "a<b<c, d>, e(f, g)>" splits into ["b<c, d>", "e(f, g)"]. Non-template
// names return nil. Unbalanced argument text is an error.
func SplitTemplateArgs(name string) ([]string, error) {
	i := strings.IndexByte(name, '<')
	if i < 0 {
		return nil, nil
	}
	if !strings.HasSuffix(name, ">") {
		return nil, fmt.Errorf("template name %q does not end in '>'", name)
	}

	inner := name[i+1 : len(name)-1]
	var args []string
	depth := 0
	start := 0
	for j := 0; j < len(inner); j++ {
		switch inner[j] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced template argument text in %q", name)
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:j]))
				start = j + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced template argument text in %q", name)
	}
	return append(args, strings.TrimSpace(inner[start:])), nil
}

// integralSuffix maps an integer type name to the literal suffix used for
// a non-type template parameter of that type in mangled symbol names.
var integralSuffix = map[string]string{
	"long":               "l",
	"long long":          "ll",
	"unsigned int":       "u",
	"unsigned long":      "ul",
	"unsigned long long": "ull",
}

// IntegralSuffix returns the ABI literal suffix for the named integer
// type, or "" when the type takes no suffix. Plain "int" mangles as a
// bare decimal literal, so the empty result is correct there; other
// unlisted types also pass through unsuffixed.
func IntegralSuffix(typeName string) string {
	return integralSuffix[typeName]
}

// FormatNTTP renders a non-type template parameter the way it appears in
// symbol name text: the decimal value followed by its type's suffix.
func FormatNTTP(valueText, typeName string) string {
	return valueText + IntegralSuffix(typeName)
}
