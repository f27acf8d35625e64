package timeline

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Marshal encodes a timeline as YAML.
func Marshal(tl *Timeline) ([]byte, error) {
	return yaml.Marshal(tl)
}

// Unmarshal decodes and validates a YAML timeline.
func Unmarshal(data []byte) (*Timeline, error) {
	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("timeline: decode: %w", err)
	}
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return &tl, nil
}

// MarshalSet encodes a scene's entrance and idle loops as one YAML document.
func MarshalSet(s Set) ([]byte, error) {
	return yaml.Marshal(s)
}

// UnmarshalSet decodes and validates a YAML set.
func UnmarshalSet(data []byte) (Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("timeline: decode set: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// Validate checks the entrance and every loop.
func (s Set) Validate() error {
	if err := s.Entrance.Validate(); err != nil {
		return err
	}
	for _, l := range s.Idle {
		if err := l.Validate(); err != nil {
			return err
		}
		if l.Target.Scene() != s.Entrance.Scene {
			return fmt.Errorf("%w: loop %s is outside scene %q", ErrInvalid, l.Target, s.Entrance.Scene)
		}
	}
	return nil
}
