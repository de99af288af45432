package compare

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter encodes the whole comparison set, indented when Pretty.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(compSet)
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison: %w", err)
	}
	return string(data), nil
}
