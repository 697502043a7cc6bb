package internal

import (
	"fmt"
	"math"
	"strconv"
)

// Runtime values are plain Go values: nil, bool, float64, string,
// *nativeFn, *loxFunction, *loxClass and *loxInstance.

// truthy reports false for nil and false, true for everything else
func truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, isBool := value.(bool); isBool {
		return b
	}
	return true
}

// isEqual never coerces between kinds. Numbers follow IEEE-754, so NaN is
// not equal to itself.
func isEqual(left, right interface{}) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}
	leftNum, leftIsNum := left.(float64)
	rightNum, rightIsNum := right.(float64)
	if leftIsNum || rightIsNum {
		return leftIsNum && rightIsNum && leftNum == rightNum
	}
	return left == right
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", value)
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
