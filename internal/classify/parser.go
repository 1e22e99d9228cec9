package classify

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResponseParseError reports a response from which no result array could be
// decoded. The caller treats it as zero results for the batch, never as
// pipeline-fatal.
type ResponseParseError struct {
	Reason string
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("classify: unparseable response: %s", e.Reason)
}

// ParseResults extracts and decodes the result array from raw response text.
// The array may be embedded in explanatory text; the longest bracketed
// substring (first '[' through last ']') is taken as the encoded array.
// No further repair of malformed encodings is attempted.
func ParseResults(raw string) ([]Result, error) {
	start := strings.Index(raw, "[")
	if start == -1 {
		return nil, &ResponseParseError{Reason: "no '[' found"}
	}
	end := strings.LastIndex(raw, "]")
	if end <= start {
		return nil, &ResponseParseError{Reason: "no closing ']' found"}
	}

	var results []Result
	if err := json.Unmarshal([]byte(raw[start:end+1]), &results); err != nil {
		return nil, &ResponseParseError{Reason: err.Error()}
	}
	return results, nil
}
