package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// StaticLookup serves a fixed table of names per kind, e.g. loaded from a file.
type StaticLookup struct {
	byName map[string]string
	byID   map[string]string
}

// NewStaticLookup takes kind -> name -> external id.
func NewStaticLookup(names map[string]map[string]string) *StaticLookup {
	s := &StaticLookup{byName: map[string]string{}, byID: map[string]string{}}
	for kind, entries := range names {
		for name, id := range entries {
			s.byName[NameKey(kind, name)] = id
			s.byID[IDKey(kind, id)] = name
		}
	}
	return s
}

// LoadStaticLookup reads a JSON object shaped {"page": {"Roadmap": "<id>"}}.
func LoadStaticLookup(path string) (*StaticLookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names file: %w", err)
	}
	var names map[string]map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("parse names file %s: %w", path, err)
	}
	return NewStaticLookup(names), nil
}

func (s *StaticLookup) FindExternalID(_ context.Context, kind, name string) (string, error) {
	return s.byName[NameKey(kind, name)], nil
}

func (s *StaticLookup) FindName(_ context.Context, kind, externalID string) (string, error) {
	return s.byID[IDKey(kind, strings.TrimSpace(externalID))], nil
}
