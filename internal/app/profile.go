package app

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Profile mirrors the Config fields that can be preset from a YAML file.
// Boolean fields are pointers so that an absent key leaves the flag value
// untouched.
type Profile struct {
	Language           string   `yaml:"language"`
	SplitCamelCase     *bool    `yaml:"split_camel_case"`
	SplitSentences     *bool    `yaml:"split_sentences"`
	ParagraphSeparator string   `yaml:"paragraph_separator"`
	XML                *bool    `yaml:"xml"`
	EOSTags            []string `yaml:"eos_tags"`
	StripTags          *bool    `yaml:"strip_tags"`
	Parallel           int      `yaml:"parallel"`
	TokenClasses       *bool    `yaml:"token_classes"`
	ExtraInfo          *bool    `yaml:"extra_info"`
}

// LoadProfile reads a YAML profile from path.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p Profile
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %q: %w", path, err)
	}
	return &p, nil
}

// Apply copies the profile's set fields onto cfg. Command-line flags are
// expected to be applied after the profile so they take precedence.
func (p *Profile) Apply(cfg *Config) {
	if p.Language != "" {
		cfg.Language = p.Language
	}
	if p.SplitCamelCase != nil {
		cfg.SplitCamelCase = *p.SplitCamelCase
	}
	if p.SplitSentences != nil {
		cfg.SplitSentences = *p.SplitSentences
	}
	if p.ParagraphSeparator != "" {
		cfg.ParagraphSeparator = p.ParagraphSeparator
	}
	if p.XML != nil {
		cfg.XML = *p.XML
	}
	if len(p.EOSTags) > 0 {
		cfg.EOSTags = p.EOSTags
	}
	if p.StripTags != nil {
		cfg.StripTags = *p.StripTags
	}
	if p.Parallel > 0 {
		cfg.Parallel = p.Parallel
	}
	if p.TokenClasses != nil {
		cfg.TokenClasses = *p.TokenClasses
	}
	if p.ExtraInfo != nil {
		cfg.ExtraInfo = *p.ExtraInfo
	}
}
