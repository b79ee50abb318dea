package config

import (
	"fmt"
	"unicode/utf8"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Search.validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if c.Seed.BatchSize <= 0 {
		return fmt.Errorf("seed.batch_size must be > 0 (got %d)", c.Seed.BatchSize)
	}

	return nil
}

func (s *SearchConfig) validate() error {
	markers := map[string]string{
		"single_wildcard":   s.SingleWildcard,
		"multiple_wildcard": s.MultipleWildcard,
		"escape":            s.Escape,
	}
	for name, v := range markers {
		if utf8.RuneCountInString(v) != 1 {
			return fmt.Errorf("%s must be exactly one character (got %q)", name, v)
		}
	}
	if s.SingleWildcard == s.MultipleWildcard ||
		s.SingleWildcard == s.Escape ||
		s.MultipleWildcard == s.Escape {
		return fmt.Errorf("wildcard markers must be distinct (single=%q multiple=%q escape=%q)",
			s.SingleWildcard, s.MultipleWildcard, s.Escape)
	}

	switch s.HeadwordPreference {
	case "s", "t", "b":
	default:
		return fmt.Errorf("headword_preference must be one of s, t, b (got %q)", s.HeadwordPreference)
	}

	return nil
}
