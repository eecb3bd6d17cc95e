package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Serialize renders a document as pretty-printed JSON-LD with HTML escaping
// disabled, so URLs keep their literal slashes.
func Serialize(doc Document) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to serialize schema document: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// ScriptTag wraps a serialized document in the ld+json script element
// emitted into page markup.
func ScriptTag(doc Document) (string, error) {
	payload, err := Serialize(doc)
	if err != nil {
		return "", err
	}
	return "<script type=\"application/ld+json\">\n" + payload + "\n</script>", nil
}
