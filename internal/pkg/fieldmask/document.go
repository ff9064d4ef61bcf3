package fieldmask

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Document converts a JSON-tagged value into its generic object form, the
// shape Diff and Apply operate on.
func Document(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return m, nil
}

// DecodeDocument is the inverse of Document.
func DecodeDocument(m map[string]any, out any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	return nil
}
