package chem

import (
	"sort"
	"strconv"
	"strings"
)

// Formula returns the Hill-order molecular formula for a symbol list:
// carbon first, hydrogen second, remaining elements alphabetically. When
// no carbon is present all elements sort alphabetically.
func Formula(symbols []string) string {
	counts := make(map[string]int, len(symbols))
	for _, s := range symbols {
		counts[normalizeSymbol(s)]++
	}

	elements := make([]string, 0, len(counts))
	for el := range counts {
		elements = append(elements, el)
	}

	hasCarbon := counts["C"] > 0
	sort.Slice(elements, func(i, j int) bool {
		return hillLess(elements[i], elements[j], hasCarbon)
	})

	var b strings.Builder
	for _, el := range elements {
		b.WriteString(el)
		if n := counts[el]; n > 1 {
			b.WriteString(strconv.Itoa(n))
		}
	}
	return b.String()
}

// normalizeSymbol fixes casing so "o" and "O" count as the same element.
func normalizeSymbol(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func hillLess(a, b string, hasCarbon bool) bool {
	if hasCarbon {
		rank := func(el string) int {
			switch el {
			case "C":
				return 0
			case "H":
				return 1
			default:
				return 2
			}
		}
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra < rb
		}
	}
	return a < b
}
