package demo

import "errors"

// DivideNumbers divides a by b
func DivideNumbers(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errors.New("division by zero is not allowed")
	}
	return a / b, nil
}
