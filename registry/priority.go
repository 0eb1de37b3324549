package registry

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/glimte/callbacks-go/contracts"
)

// coercePriority converts a user supplied priority to float64
func coercePriority(p any) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: <nil>", contracts.ErrInvalidPriority)
	}

	var f float64
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f = v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f = float64(v.Uint())
	case reflect.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", contracts.ErrInvalidPriority, v.String())
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: %T", contracts.ErrInvalidPriority, p)
	}

	// NaN has no place in an ordering
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w: NaN", contracts.ErrInvalidPriority)
	}

	return f, nil
}
