// Package people mines person/title pairs from company web pages.
package people

import (
	"sort"
	"strings"
)

// Separator joins a name and a title in the rendered form of a Record.
const Separator = " – "

// NoTeamInfo is rendered in place of an empty Set.
const NoTeamInfo = "No team info found."

// Record is a mined name/title pair.
type Record struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// String renders the record as "{name} – {title}".
func (r Record) String() string {
	return r.Name + Separator + r.Title
}

// Set holds unique records keyed by their rendered form.
type Set struct {
	records map[string]Record
}

// NewSet creates a set containing the given records.
func NewSet(records ...Record) Set {
	s := Set{records: make(map[string]Record, len(records))}
	for _, r := range records {
		s.Add(r)
	}
	return s
}

// Add inserts a record, collapsing duplicates by rendered form.
func (s *Set) Add(r Record) {
	if s.records == nil {
		s.records = make(map[string]Record)
	}
	s.records[r.String()] = r
}

// Union adds every record of other to s.
func (s *Set) Union(other Set) {
	for _, r := range other.records {
		s.Add(r)
	}
}

// Len returns the number of unique records.
func (s Set) Len() int {
	return len(s.records)
}

// Contains reports whether a record with the given rendered form is present.
func (s Set) Contains(rendered string) bool {
	_, ok := s.records[rendered]
	return ok
}

// Records returns the records sorted by rendered form.
func (s Set) Records() []Record {
	keys := s.Strings()
	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.records[k])
	}
	return out
}

// Strings returns the rendered records in sorted order.
func (s Set) Strings() []string {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render joins the rendered records with newlines, or returns NoTeamInfo for an empty set.
func (s Set) Render() string {
	if s.Len() == 0 {
		return NoTeamInfo
	}
	return strings.Join(s.Strings(), "\n")
}
