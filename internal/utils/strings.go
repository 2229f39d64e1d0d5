package utils

import "fmt"

// Pluralize formats a count with a noun, adding "s" when n is not one.
func Pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
