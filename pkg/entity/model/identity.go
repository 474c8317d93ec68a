package model

import "strings"

// IdentitySet holds normalized identity keys already present in the store,
// prefetched once per import run to bound query volume.
type IdentitySet struct {
	emails    map[string]struct{}
	linkedins map[string]struct{}
	names     map[string]struct{}
}

// NewIdentitySet creates an empty IdentitySet.
func NewIdentitySet() *IdentitySet {
	return &IdentitySet{
		emails:    make(map[string]struct{}),
		linkedins: make(map[string]struct{}),
		names:     make(map[string]struct{}),
	}
}

// AddEmail registers a persisted email, lowercased and trimmed.
func (s *IdentitySet) AddEmail(email string) {
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		s.emails[email] = struct{}{}
	}
}

// AddLinkedin registers a persisted LinkedIn URL, lowercased with the trailing
// slash stripped.
func (s *IdentitySet) AddLinkedin(url string) {
	url = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(url)), "/")
	if url != "" {
		s.linkedins[url] = struct{}{}
	}
}

// AddFullName registers a persisted full name, lowercased.
func (s *IdentitySet) AddFullName(name string) {
	if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
		s.names[name] = struct{}{}
	}
}

func (s *IdentitySet) HasEmail(email string) bool {
	_, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok && email != ""
}

func (s *IdentitySet) HasLinkedin(url string) bool {
	url = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(url)), "/")
	_, ok := s.linkedins[url]
	return ok && url != ""
}

func (s *IdentitySet) HasFullName(name string) bool {
	_, ok := s.names[strings.ToLower(strings.TrimSpace(name))]
	return ok && name != ""
}

// Len returns the total number of keys across all three sets.
func (s *IdentitySet) Len() int {
	return len(s.emails) + len(s.linkedins) + len(s.names)
}
