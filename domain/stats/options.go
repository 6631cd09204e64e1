package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"py50/domain/core"
)

// Options carries test-specific keyword parameters such as "effsize" or
// "padjust". Values may be typed or given as strings, as they arrive from the
// command line.
type Options map[string]interface{}

// Clone returns a shallow copy that is safe to modify
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// With returns a copy with key set to value
func (o Options) With(key string, value interface{}) Options {
	out := o.Clone()
	out[key] = value
	return out
}

// Check rejects keys that are not in allowed.
func (o Options) Check(allowed ...string) error {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !set[k] {
			return core.NewInvalidOptionError(k, "not accepted here; accepted: "+strings.Join(allowed, ", "))
		}
	}
	return nil
}

// String returns a string option or def when absent
func (o Options) String(key, def string) (string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	switch x := v.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	}
	return "", core.NewInvalidOptionError(key, fmt.Sprintf("want string, got %T", v))
}

// Bool returns a boolean option or def when absent
func (o Options) Bool(key string, def bool) (bool, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, core.NewInvalidOptionError(key, fmt.Sprintf("want bool, got %q", x))
		}
		return b, nil
	}
	return false, core.NewInvalidOptionError(key, fmt.Sprintf("want bool, got %T", v))
}

// Int returns an integer option or def when absent
func (o Options) Int(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case float64:
		if x == float64(int(x)) {
			return int(x), nil
		}
	case string:
		n, err := strconv.Atoi(x)
		if err == nil {
			return n, nil
		}
	}
	return 0, core.NewInvalidOptionError(key, fmt.Sprintf("want integer, got %v", v))
}

// Float returns a float option or def when absent
func (o Options) Float(key string, def float64) (float64, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err == nil {
			return f, nil
		}
	}
	return 0, core.NewInvalidOptionError(key, fmt.Sprintf("want number, got %v", v))
}

// Strings returns a list option. A single string is split on commas.
func (o Options) Strings(key string) ([]string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch x := v.(type) {
	case []string:
		return x, nil
	case string:
		var out []string
		for _, part := range strings.Split(x, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
	return nil, core.NewInvalidOptionError(key, fmt.Sprintf("want list of strings, got %T", v))
}

// OneOf validates that a string option is among choices
func (o Options) OneOf(key, def string, choices ...string) (string, error) {
	s, err := o.String(key, def)
	if err != nil {
		return "", err
	}
	for _, c := range choices {
		if s == c {
			return s, nil
		}
	}
	return "", core.NewInvalidOptionError(key, fmt.Sprintf("%q is not one of %s", s, strings.Join(choices, ", ")))
}

// ParseOptions turns key=value pairs into Options
func ParseOptions(pairs []string) (Options, error) {
	opts := Options{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, core.NewInvalidOptionError(p, "expected key=value")
		}
		opts[key] = strings.TrimSpace(value)
	}
	return opts, nil
}
