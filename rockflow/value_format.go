package rockflow

import (
	"fmt"
	"strconv"
	"strings"
)

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindFloat:
		return formatFloat(v.data.(float64))
	case KindBytes:
		return strconv.Quote(v.data.(string))
	case KindIntList:
		elems := v.data.([]int64)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = strconv.FormatInt(e, 10)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindFloatList:
		elems := v.data.([]float64)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = formatFloat(e)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindStringList:
		elems := v.data.([]string)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = strconv.Quote(e)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindContext:
		if assigner, ok := v.data.(ItemAttrAssigner); ok {
			return fmt.Sprintf("<context item %d>", assigner.Index())
		}
		return fmt.Sprintf("<context %T>", v.data)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// floats always render with a decimal point so they read back as floats.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
