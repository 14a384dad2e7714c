package widget

import (
	"encoding/json"
	"sort"
)

// StringSet is an unordered set of strings. It serializes as a sorted list.
type StringSet map[string]struct{}

// NewStringSet returns a set holding items.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	s.Add(items...)
	return s
}

// Add inserts items, ignoring empty strings.
func (s StringSet) Add(items ...string) {
	for _, item := range items {
		if item != "" {
			s[item] = struct{}{}
		}
	}
}

// Has reports whether item is in the set.
func (s StringSet) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Union adds every member of other.
func (s StringSet) Union(other StringSet) {
	for item := range other {
		s[item] = struct{}{}
	}
}

// Sorted returns the members in lexical order. Never nil.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON implements json.Marshaler.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*s = NewStringSet(items...)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (s StringSet) MarshalYAML() (any, error) {
	return s.Sorted(), nil
}
