package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// ToString converts a scanned database value to string.
// Drivers return text as string or []byte depending on the column type; a
// nil value becomes the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts a scanned database value to bool.
// It handles native booleans (postgres), tinyint(1) integers (mysql, sqlite)
// and textual forms such as "t", "1" or "true". Unrecognized values are false.
func ToBool(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	case []byte:
		return ToBool(string(v))
	case string:
		b, err := cast.ToBoolE(strings.TrimSpace(v))
		if err != nil {
			return false
		}
		return b
	default:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return false
		}
		return b
	}
}
