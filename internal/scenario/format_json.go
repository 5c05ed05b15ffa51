package scenario

import (
	"encoding/json"
)

// JSONFormatter formats comparisons as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format marshals an IR35Comparison, a BRRRRAnalysis or anything else
func (jf *JSONFormatter) Format(v interface{}) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
