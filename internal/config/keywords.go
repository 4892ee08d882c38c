package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRecallKeywords is the built-in recall-intent phrase set. The
// deployment language is Swedish with an English-speaking model, so both
// locales are covered. Matching is lowercase substring containment, so
// keep entries lowercase.
var DefaultRecallKeywords = []string{
	"sammanfatta",
	"minns du",
	"kommer du ihåg",
	"vad har vi pratat om",
	"summarize",
	"recall",
	"do you remember",
}

// keywordsFile is the YAML shape of a recall keywords file:
//
//	recall_keywords:
//	  - sammanfatta
//	  - minns du
type keywordsFile struct {
	RecallKeywords []string `yaml:"recall_keywords"`
}

// LoadRecallKeywords reads the recall-intent keyword set from a YAML file.
// An empty path returns the built-in defaults. Entries are lowercased and
// blank lines dropped so the file can be edited carelessly.
func LoadRecallKeywords(path string) ([]string, error) {
	if path == "" {
		return DefaultRecallKeywords, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recall keywords file: %w", err)
	}

	var file keywordsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse recall keywords file: %w", err)
	}

	keywords := make([]string, 0, len(file.RecallKeywords))
	for _, kw := range file.RecallKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}

	if len(keywords) == 0 {
		return DefaultRecallKeywords, nil
	}

	return keywords, nil
}
