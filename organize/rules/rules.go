package rules

import (
	"strings"

	"tuneshelf/organize/metadata"
)

// Kind identifies a predicate variant.
type Kind string

const (
	KindTempoMin Kind = "min_tempo"
	KindTempoMax Kind = "max_tempo"
	KindGenreAny Kind = "genre"
)

// Predicate is one tagged condition over track metadata.
type Predicate struct {
	Kind   Kind
	Tempo  int      // KindTempoMin / KindTempoMax, inclusive bound
	Genres []string // KindGenreAny
}

// Matches evaluates the predicate against a track.
//
// Tempo bounds are inclusive. A track with unknown tempo (0) fails any
// positive min_tempo bound and passes any non-negative max_tempo bound:
// unknown tempo must not be promoted into high-energy playlists but may
// still land in low-tempo ones.
func (p Predicate) Matches(t metadata.Track) bool {
	switch p.Kind {
	case KindTempoMin:
		return t.Tempo >= p.Tempo
	case KindTempoMax:
		return t.Tempo <= p.Tempo
	case KindGenreAny:
		genre := strings.ToLower(t.Genre)
		for _, g := range p.Genres {
			if strings.Contains(genre, strings.ToLower(g)) {
				return true
			}
		}
		return false
	}
	return false
}

// Rule is a conjunction of predicates, in document order.
type Rule struct {
	Predicates []Predicate
}

// Matches reports whether the track satisfies every predicate. A rule
// with no predicates matches everything.
func (r Rule) Matches(t metadata.Track) bool {
	for _, p := range r.Predicates {
		if !p.Matches(t) {
			return false
		}
	}
	return true
}

// SmartPlaylist pairs a playlist file name with its rule.
type SmartPlaylist struct {
	Name string
	Rule Rule
}

// Set is an ordered collection of smart playlists, in the order they
// appear in the configuration document.
type Set []SmartPlaylist
