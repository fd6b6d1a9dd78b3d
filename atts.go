package objcache

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Attribute keys understood by ParseConfig.
const (
	AttExpire        = "expire"
	AttGroup         = "group"
	AttSingle        = "single"
	AttNetworkGlobal = "network_global"
	AttForce         = "force"
)

// DefaultExpire is the TTL used when no "expire" attribute is given.
const DefaultExpire = time.Hour

// Attr is one configuration attribute.
type Attr struct {
	Key   string
	Value any
}

// Atts is an ordered attribute list. Lookups test key presence, so a nil,
// false or zero Value is still a value.
type Atts []Attr

// Lookup returns the value of the first attribute named key.
func (a Atts) Lookup(key string) (any, bool) {
	for _, at := range a {
		if at.Key == key {
			return at.Value, true
		}
	}
	return nil, false
}

// Get is Lookup without the presence flag.
func (a Atts) Get(key string) any {
	v, _ := a.Lookup(key)
	return v
}

// With returns a copy of a where key is set to v, appended if absent.
func (a Atts) With(key string, v any) Atts {
	out := make(Atts, len(a), len(a)+1)
	copy(out, a)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = v
			return out
		}
	}
	return append(out, Attr{Key: key, Value: v})
}

// Keys returns attribute names in order.
func (a Atts) Keys() []string {
	keys := make([]string, len(a))
	for i, at := range a {
		keys[i] = at.Key
	}
	return keys
}

// Map flattens a into a map. Order is lost.
func (a Atts) Map() map[string]any {
	m := make(map[string]any, len(a))
	for _, at := range a {
		if _, dup := m[at.Key]; !dup {
			m[at.Key] = at.Value
		}
	}
	return m
}

// SetDefaultAtts merges overrides into defaults. The result has exactly the
// keys of defaults, in their order; each value comes from overrides when the
// key is present there (whatever the value), else from defaults. Keys found
// only in overrides are dropped.
func SetDefaultAtts(defaults, overrides Atts) Atts {
	out := make(Atts, 0, len(defaults))
	for _, d := range defaults {
		if v, ok := overrides.Lookup(d.Key); ok {
			out = append(out, Attr{Key: d.Key, Value: v})
			continue
		}
		out = append(out, d)
	}
	return out
}

// DefaultAtts returns the built-in attribute defaults for a site namespace.
func DefaultAtts(namespace string) Atts {
	return Atts{
		{Key: AttExpire, Value: int64(DefaultExpire / time.Second)},
		{Key: AttGroup, Value: namespace + "_cache_group"},
		{Key: AttSingle, Value: false},
		{Key: AttNetworkGlobal, Value: false},
		{Key: AttForce, Value: false},
	}
}

// Config is the typed form of Atts.
type Config struct {
	Expire        time.Duration // whole seconds; 0 => no expiry
	Group         string
	Single        bool // one entry per key instead of one aggregate per group
	NetworkGlobal bool // share values across sites of a multisite network
	Force         bool // accepted for compatibility; has no effect
}

// ParseConfig coerces attributes into a Config. It never fails: unusable
// values fall back to zero values.
func ParseConfig(a Atts) Config {
	return Config{
		Expire:        ParseExpire(a.Get(AttExpire)),
		Group:         toString(a.Get(AttGroup)),
		Single:        ParseBool(a.Get(AttSingle)),
		NetworkGlobal: ParseBool(a.Get(AttNetworkGlobal)),
		Force:         ParseBool(a.Get(AttForce)),
	}
}

// Atts converts c back into attributes.
func (c Config) Atts() Atts {
	return Atts{
		{Key: AttExpire, Value: int64(c.Expire / time.Second)},
		{Key: AttGroup, Value: c.Group},
		{Key: AttSingle, Value: c.Single},
		{Key: AttNetworkGlobal, Value: c.NetworkGlobal},
		{Key: AttForce, Value: c.Force},
	}
}

// ParseBool applies permissive boolean filtering: true, 1 and the strings
// "1", "true", "on", "yes" (any case, surrounding space ignored) are true.
// Everything else is false.
func ParseBool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "true", "on", "yes":
			return true
		}
		return false
	case []byte:
		return ParseBool(string(x))
	case nil:
		return false
	}
	if n, ok := asInt64(v); ok {
		return n == 1
	}
	if f, ok := asFloat64(v); ok {
		return f == 1
	}
	return false
}

const maxExpireSeconds = math.MaxInt64 / int64(time.Second)

// ParseExpire coerces a TTL given in seconds. Durations are accepted as is
// (truncated to seconds). Negative or unusable values yield 0.
func ParseExpire(v any) time.Duration {
	var secs int64
	switch x := v.(type) {
	case time.Duration:
		secs = int64(x / time.Second)
	case bool:
		if x {
			secs = 1
		}
	case string:
		secs = leadingInt(x)
	case []byte:
		secs = leadingInt(string(x))
	default:
		if n, ok := asInt64(v); ok {
			secs = n
		} else if f, ok := asFloat64(v); ok && !math.IsNaN(f) {
			secs = clampFloat(f)
		}
	}
	if secs <= 0 {
		return 0
	}
	if secs > maxExpireSeconds {
		secs = maxExpireSeconds
	}
	return time.Duration(secs) * time.Second
}

// leadingInt parses a numeric string, or the integer prefix of a string
// such as "30s". No digits yields 0.
func leadingInt(s string) int64 {
	if n, ok := parseNumeric(s); ok {
		switch x := n.(type) {
		case int64:
			return x
		case float64:
			return clampFloat(x)
		}
	}
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			if strings.HasPrefix(s, "-") {
				return math.MinInt64
			}
			return math.MaxInt64
		}
		return 0
	}
	return n
}

func clampFloat(f float64) int64 {
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// ParseAttsYAML decodes a YAML mapping into Atts, keeping document order.
// An empty document yields no attributes.
func ParseAttsYAML(b []byte) (Atts, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("objcache: parse attributes: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("objcache: parse attributes: line %d: expected a mapping", root.Line)
	}
	out := make(Atts, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, vn := root.Content[i], root.Content[i+1]
		var v any
		if err := vn.Decode(&v); err != nil {
			return nil, fmt.Errorf("objcache: parse attributes: key %q: %w", k.Value, err)
		}
		out = append(out, Attr{Key: k.Value, Value: v})
	}
	return out, nil
}
