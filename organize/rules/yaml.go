package rules

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes a rule from its configuration mapping. Recognized
// keys are min_tempo, max_tempo, and genre (a string or a list of
// strings). Unrecognized keys are skipped, not errors, so older builds
// tolerate rules written by newer ones.
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("smart playlist rule must be a mapping, got %s", nodeKind(value))
	}

	preds := []Predicate{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		switch keyNode.Value {
		case string(KindTempoMin), string(KindTempoMax):
			var tempo int
			if err := valNode.Decode(&tempo); err != nil {
				return fmt.Errorf("%s: %w", keyNode.Value, err)
			}
			preds = append(preds, Predicate{Kind: Kind(keyNode.Value), Tempo: tempo})
		case string(KindGenreAny):
			genres, err := decodeGenres(valNode)
			if err != nil {
				return err
			}
			preds = append(preds, Predicate{Kind: KindGenreAny, Genres: genres})
		}
	}

	r.Predicates = preds
	return nil
}

// decodeGenres accepts both the single-string and list forms of the genre
// key.
func decodeGenres(value *yaml.Node) ([]string, error) {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return nil, fmt.Errorf("genre: %w", err)
		}
		return []string{s}, nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return nil, fmt.Errorf("genre: %w", err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("genre must be a string or a list of strings, got %s", nodeKind(value))
}

// MarshalYAML renders the rule back into its configuration mapping,
// preserving predicate order.
func (r Rule) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, p := range r.Predicates {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: string(p.Kind)}
		switch p.Kind {
		case KindTempoMin, KindTempoMax:
			node.Content = append(node.Content, key, &yaml.Node{
				Kind:  yaml.ScalarNode,
				Tag:   "!!int",
				Value: strconv.Itoa(p.Tempo),
			})
		case KindGenreAny:
			seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, g := range p.Genres {
				seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: g})
			}
			node.Content = append(node.Content, key, seq)
		}
	}
	return node, nil
}

// UnmarshalYAML decodes the smart_playlists mapping, preserving document
// order so classification and playlist appends stay deterministic.
func (s *Set) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("smart_playlists must be a mapping, got %s", nodeKind(value))
	}

	out := Set{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		var sp SmartPlaylist
		if err := value.Content[i].Decode(&sp.Name); err != nil {
			return fmt.Errorf("smart playlist name: %w", err)
		}
		if err := value.Content[i+1].Decode(&sp.Rule); err != nil {
			return fmt.Errorf("smart playlist %q: %w", sp.Name, err)
		}
		out = append(out, sp)
	}

	*s = out
	return nil
}

// MarshalYAML renders the set back into a mapping in set order.
func (s Set) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, sp := range s {
		val, err := sp.Rule.MarshalYAML()
		if err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: sp.Name},
			val.(*yaml.Node),
		)
	}
	return node, nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "scalar"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.DocumentNode:
		return "document"
	case yaml.AliasNode:
		return "alias"
	}
	return strings.TrimSpace(fmt.Sprintf("kind %d", n.Kind))
}
