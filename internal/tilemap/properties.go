package tilemap

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Properties holds typed tile or layer properties. Values are bool, int,
// float64 or string; a value that failed its declared conversion is kept as
// the raw string.
type Properties map[string]any

// ConvertProperty converts raw to the declared type. On failure raw is
// returned alongside the error so callers can keep it.
func ConvertProperty(typ, raw string) (any, error) {
	switch strings.ToLower(typ) {
	case "", "string":
		return raw, nil
	case "bool":
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return raw, fmt.Errorf("property %q as bool: %w", raw, err)
		}
		return v, nil
	case "int":
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return raw, fmt.Errorf("property %q as int: %w", raw, err)
		}
		return v, nil
	case "float":
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return raw, fmt.Errorf("property %q as float: %w", raw, err)
		}
		return v, nil
	}
	return raw, fmt.Errorf("property %q: unknown type %q", raw, typ)
}

// Bool reports whether key holds the boolean true.
func (p Properties) Bool(key string) bool {
	v, ok := p[key].(bool)
	return ok && v
}

func (p Properties) Int(key string) (int, bool) {
	v, ok := p[key].(int)
	return v, ok
}

func (p Properties) Float(key string) (float64, bool) {
	switch v := p[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// String returns the property formatted as text.
func (p Properties) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// merge copies o over p, allocating p when needed.
func (p Properties) merge(o Properties) Properties {
	if len(o) == 0 {
		return p
	}
	if p == nil {
		p = make(Properties, len(o))
	}
	maps.Copy(p, o)
	return p
}
