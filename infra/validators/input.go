package validators

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	idListPattern = regexp.MustCompile(`^\s*\d+\s*(,\s*\d+\s*)*$`)
	amountPattern = regexp.MustCompile(`^\d+\.\d{2}$`)
	pricePattern  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// ParseIdList reads a comma separated list such as "1, 3,8". Every id must
// be in allowed; duplicates are dropped keeping first-seen order.
func ParseIdList(input string, allowed []int32) ([]int32, bool) {
	if !idListPattern.MatchString(input) {
		return nil, false
	}
	valid := make(map[int32]bool, len(allowed))
	for _, id := range allowed {
		valid[id] = true
	}

	seen := map[int32]bool{}
	var ids []int32
	for _, part := range strings.Split(input, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 32)
		if err != nil || !valid[int32(id)] {
			return nil, false
		}
		if seen[int32(id)] {
			continue
		}
		seen[int32(id)] = true
		ids = append(ids, int32(id))
	}
	return ids, len(ids) > 0
}

// ParseCount accepts plain non-negative integers only: no sign, no spaces.
func ParseCount(input string) (int32, bool) {
	if input == "" {
		return 0, false
	}
	for _, r := range input {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	value, err := strconv.ParseInt(input, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(value), true
}

// IsAmount reports whether input is a positive amount written with exactly
// two decimals, e.g. "12.50".
func IsAmount(input string) bool {
	if !amountPattern.MatchString(input) {
		return false
	}
	value, err := decimal.NewFromString(input)
	return err == nil && value.IsPositive()
}

func ParsePrice(input string) (decimal.Decimal, bool) {
	input = strings.TrimSpace(input)
	if !pricePattern.MatchString(input) {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(input)
	if err != nil || !value.IsPositive() {
		return decimal.Zero, false
	}
	return value, true
}

// IsPersonName accepts letters only.
func IsPersonName(input string) bool {
	if input == "" {
		return false
	}
	for _, r := range input {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsItemName accepts letters, spaces, apostrophes and hyphens, with at least
// one letter.
func IsItemName(input string) bool {
	hasLetter := false
	for _, r := range input {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == ' ', r == '\'', r == '-':
		default:
			return false
		}
	}
	return hasLetter
}

func IsSkip(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "skip")
}

// ParseYesNo reads Y/N answers. ok is false for anything else.
func ParseYesNo(input string) (yes bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

// ParseChoice matches input case-insensitively against options and returns
// the option as written.
func ParseChoice(input string, options ...string) (string, bool) {
	input = strings.TrimSpace(input)
	for _, option := range options {
		if strings.EqualFold(input, option) {
			return option, true
		}
	}
	return "", false
}
