package policy

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// Parse decodes a policy document from YAML (or JSON) bytes. Parsing performs
// no invariant checking; a parsed document must still pass Validate before it
// may be published.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse policy document: %w", err)
	}

	doc := &Document{}
	if err := v.Unmarshal(doc); err != nil {
		return nil, fmt.Errorf("failed to decode policy document: %w", err)
	}

	applyPatternDefaults(doc)
	return doc, nil
}

// applyPatternDefaults names each pattern after its intent_mappings key and
// fills omitted scoring weights.
func applyPatternDefaults(doc *Document) {
	for name, route := range doc.IntentMappings {
		if route.Pattern == nil {
			continue
		}
		route.Pattern.Name = name
		if route.Pattern.KeywordWeight == 0 {
			route.Pattern.KeywordWeight = DefaultKeywordWeight
		}
		if route.Pattern.ContextWeight == 0 {
			route.Pattern.ContextWeight = DefaultContextWeight
		}
		doc.IntentMappings[name] = route
	}
}
