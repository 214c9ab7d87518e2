package hierarchy

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// member is a setting resolved to C++.
type member struct {
	Type    string
	Literal string
	// Header is the standard header declaring Type, if any.
	Header string
}

// resolve infers the member type and formats the default value. An explicit
// type overrides the inferred one; string values of explicit non-string
// types are written verbatim, so enumerators and expressions can be used as
// defaults.
func (s Setting) resolve() (member, error) {
	var m member

	switch v := s.Value.(type) {
	case bool:
		m = member{Type: "bool", Literal: strconv.FormatBool(v)}
	case int:
		m = integer(int64(v))
	case int64:
		m = integer(v)
	case uint64:
		if v > math.MaxInt64 {
			m = member{Type: "uint64_t", Literal: strconv.FormatUint(v, 10) + "u", Header: "cstdint"}
		} else {
			m = integer(int64(v))
		}
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return member{}, errors.Newf("setting %s: %v has no literal", s.Name, v)
		}
		m = member{Type: "float", Literal: floatLiteral(v)}
	case string:
		if s.Type != "" && !isStringType(s.Type) {
			return member{Type: s.Type, Literal: v}, nil
		}
		m = member{Type: "std::string", Literal: strconv.Quote(v), Header: "string"}
	default:
		return member{}, errors.Newf("setting %s: unsupported value %v (%T)", s.Name, s.Value, s.Value)
	}

	if s.Type != "" && s.Type != m.Type {
		m.Type = s.Type
		m.Header = headerFor(s.Type)
	}
	return m, nil
}

func integer(v int64) member {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return member{Type: "int64_t", Literal: strconv.FormatInt(v, 10) + "ll", Header: "cstdint"}
	}
	return member{Type: "int32_t", Literal: strconv.FormatInt(v, 10), Header: "cstdint"}
}

func floatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s + "f"
}

func isStringType(t string) bool {
	switch t {
	case "std::string", "std::string_view", "const char*":
		return true
	}
	return false
}

func headerFor(t string) string {
	switch {
	case strings.HasPrefix(t, "std::string_view"):
		return "string_view"
	case strings.HasPrefix(t, "std::string"):
		return "string"
	case strings.HasSuffix(t, "_t") && (strings.HasPrefix(t, "int") || strings.HasPrefix(t, "uint")):
		return "cstdint"
	}
	return ""
}
