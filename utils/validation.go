// utils/validation.go
package utils

// ValidatePhone checks that a phone number is exactly 10 digits,
// digits only.
func ValidatePhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
