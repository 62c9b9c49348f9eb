package output

import (
	"bytes"
	"encoding/json"
)

// MarshalLine encodes v as one line of JSON without a trailing newline.
// HTML characters are left unescaped.
func MarshalLine(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
