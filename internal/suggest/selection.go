package suggest

// Selection is the current set of matches for a prefix plus the index of
// the match being shown. Index is always < Len() unless the set is empty.
type Selection struct {
	prefix  string
	matches []string
	index   int
}

// Reset replaces the match set and moves the index back to 0.
func (s *Selection) Reset(prefix string, matches []string) {
	s.prefix = prefix
	s.matches = matches
	s.index = 0
}

// Refresh replaces the match set but keeps the index, clamped to the new set.
func (s *Selection) Refresh(prefix string, matches []string) {
	s.prefix = prefix
	s.matches = matches
	if s.index >= len(matches) {
		s.index = 0
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.Reset("", nil)
}

// Prefix returns the prefix the matches were computed for.
func (s *Selection) Prefix() string {
	return s.prefix
}

// Matches returns the current match set.
func (s *Selection) Matches() []string {
	return s.matches
}

// Len returns the number of matches.
func (s *Selection) Len() int {
	return len(s.matches)
}

// Index returns the position of the match being shown.
func (s *Selection) Index() int {
	return s.index
}

// Current returns the match at the index.
func (s *Selection) Current() (string, bool) {
	if len(s.matches) == 0 {
		return "", false
	}
	return s.matches[s.index], true
}

// Suffix returns the part of the current match after the prefix.
func (s *Selection) Suffix() string {
	match, ok := s.Current()
	if !ok || len(match) < len(s.prefix) {
		return ""
	}
	return match[len(s.prefix):]
}

// Advance moves to the next match. When the index runs past the end, more
// is asked for: if more(prefix) produces a larger match set the index stays
// on the first new match, otherwise it wraps to 0.
func (s *Selection) Advance(more func(prefix string) []string) {
	if len(s.matches) == 0 {
		return
	}
	s.index++
	if s.index < len(s.matches) {
		return
	}
	if more != nil {
		if grown := more(s.prefix); len(grown) > len(s.matches) {
			s.matches = grown
			return
		}
	}
	s.index = 0
}
