package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatGuaranies renders an integer amount with thousand separators,
// e.g. 2798309 -> "2.798.309 Gs".
func FormatGuaranies(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%s Gs", sign, formatThousand(amount))
}

// ParseGuaranies parses "2.798.309", "Gs 1.000" or "1000" into an integer amount.
func ParseGuaranies(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimPrefix(s, "gs")
	s = strings.TrimSuffix(s, "gs")
	replacer := strings.NewReplacer(".", "", ",", "", " ", "")
	s = replacer.Replace(s)
	if s == "" {
		return 0, fmt.Errorf("monto en guaraníes inválido")
	}
	return strconv.ParseInt(s, 10, 64)
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
