package parsing

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/talent-matcher/internal/types"
)

// ParseSalary parses a salary string such as "$120,000 - $150,000" or
// "$100,000+ equity" into a SalaryRange.
//
// Currency symbols and thousands separators are removed. When an additive equity
// clause is present only the text before the first "+" is parsed. A hyphenated pair
// keeps its encounter order, even when min > max. A single value is read from the
// first whitespace-delimited token. Anything else returns ok == false, which callers
// must treat as unspecified rather than zero.
func ParseSalary(text string) (*types.SalaryRange, bool) {
	salary := strings.ReplaceAll(text, "$", "")
	salary = strings.ReplaceAll(salary, ",", "")

	if strings.Contains(salary, "+") && strings.Contains(strings.ToLower(salary), "equity") {
		salary = strings.TrimSpace(strings.SplitN(salary, "+", 2)[0])
	}

	if strings.Contains(salary, "-") {
		parts := strings.Split(salary, "-")
		if len(parts) != 2 {
			return nil, false
		}
		lo, ok := parseAmount(parts[0])
		if !ok {
			return nil, false
		}
		hi, ok := parseAmount(parts[1])
		if !ok {
			return nil, false
		}
		return &types.SalaryRange{Min: lo, Max: hi}, true
	}

	fields := strings.Fields(salary)
	if len(fields) == 0 {
		return nil, false
	}
	base, ok := parseAmount(fields[0])
	if !ok {
		return nil, false
	}
	return &types.SalaryRange{Min: base, Max: base}, true
}

// parseAmount converts a trimmed numeric token; NaN and infinities are rejected.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
