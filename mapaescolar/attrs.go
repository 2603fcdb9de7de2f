package mapaescolar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"
)

// ResolveAttribute returns the value of the first candidate key present in
// props whose string representation, after trimming, is non-empty. Callers
// list keys from most to least canonical for a dataset family; there is no
// fuzzy matching and no case folding.
func ResolveAttribute(props geojson.Properties, candidates []string) (string, bool) {
	for _, key := range candidates {
		value, ok := props[key]
		if !ok {
			continue
		}

		str := strings.TrimSpace(stringifyAttribute(value))
		if str == "" {
			continue
		}

		return str, true
	}

	return "", false
}

// ResolveNumber resolves like ResolveAttribute but additionally requires
// the value to parse as a number; candidates that are present but
// non-numeric are skipped.
func ResolveNumber(props geojson.Properties, candidates []string) (float64, bool) {
	for _, key := range candidates {
		value, ok := props[key]
		if !ok {
			continue
		}

		switch v := value.(type) {
		case float64:
			return v, true
		case float32:
			return float64(v), true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		}

		str := strings.TrimSpace(stringifyAttribute(value))
		if str == "" {
			continue
		}

		num, err := strconv.ParseFloat(str, 64)
		if err != nil {
			continue
		}

		return num, true
	}

	return 0, false
}

func stringifyAttribute(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
