package utils

import (
	"strconv"
	"strings"

	"fleetops/internal/money"
)

// FormatINR renders an amount with Indian digit grouping: 12,34,567.89.
func FormatINR(m money.Money) string {
	paise := m.Minor()
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	whole := strconv.FormatInt(paise/100, 10)
	frac := paise % 100
	return sign + groupIndian(whole) + "." + twoDigits(frac)
}

// FormatRupee renders an amount for on-screen documents, e.g. "₹ 1,550.00".
func FormatRupee(m money.Money) string {
	return "₹ " + FormatINR(m)
}

// FormatRupeeASCII is FormatRupee for outputs limited to Latin-1 fonts (PDF core fonts).
func FormatRupeeASCII(m money.Money) string {
	return "Rs. " + FormatINR(m)
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
