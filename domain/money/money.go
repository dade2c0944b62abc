// Package money provides integer currency helpers.
// All amounts in apops are int64 đồng (the smallest unit); there is no
// fractional subunit and no floating-point arithmetic anywhere.
package money

// Format renders an amount with comma separators and the đ suffix.
// This is a PURE function.
func Format(amount int64) string {
	return group(amount) + "đ"
}

// group adds comma separators.
func group(n int64) string {
	if n < 0 {
		return "-" + group(-n)
	}
	if n < 1000 {
		return itoa(n)
	}
	return group(n/1000) + "," + padThree(n%1000)
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func padThree(n int64) string {
	s := itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
