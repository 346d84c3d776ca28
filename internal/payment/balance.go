package payment

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseBalance разбирает баланс в денежном формате.
// Понимает "1 234,56 ₽", "$1,234.56", "1234.5", "-10.00 RUB".
// Если встречаются и точка, и запятая, десятичным считается последний разделитель.
// Точка и запятая поодиночке разбираются одинаково: если разделитель делит число
// на разряды тысяч ("1.234", "1,234,567"), он убирается, иначе это десятичная часть.
func ParseBalance(raw string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r), r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}

	s := b.String()
	if s == "" || s == "-" {
		return decimal.Zero, fmt.Errorf("parse balance %q: no digits", raw)
	}

	var err error
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if s, err = normalizeSeparator(s, ","); err != nil {
			return decimal.Zero, fmt.Errorf("parse balance %q: %w", raw, err)
		}
	case lastDot >= 0:
		if s, err = normalizeSeparator(s, "."); err != nil {
			return decimal.Zero, fmt.Errorf("parse balance %q: %w", raw, err)
		}
	}

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance %q: %w", raw, err)
	}
	return value, nil
}

// normalizeSeparator приводит число с одним видом разделителя к виду "1234.56"
func normalizeSeparator(s, sep string) (string, error) {
	groups := strings.Split(s, sep)
	if isThousandsGrouping(groups) {
		return strings.Join(groups, ""), nil
	}
	if len(groups) == 2 {
		return groups[0] + "." + groups[1], nil
	}
	return "", fmt.Errorf("malformed thousands grouping")
}

// isThousandsGrouping: первая группа из 1-3 цифр, дальше группы ровно по три
func isThousandsGrouping(groups []string) bool {
	lead := strings.TrimPrefix(groups[0], "-")
	if lead == "" || lead == "0" || len(lead) > 3 {
		return false
	}
	for _, group := range groups[1:] {
		if len(group) != 3 {
			return false
		}
	}
	return true
}
