package domain

import (
	"bytes"
	"encoding/json"
)

// RequiredPayloadKeys lists the keys every report payload must carry, in the
// order they are checked.
var RequiredPayloadKeys = []string{"name", "size", "packages", "sections"}

// ReportPayload is the structured data a generated report embeds.
// Every field is kept exactly as written; only presence is checked, so a
// null or oddly typed value still round-trips unchanged.
type ReportPayload struct {
	Name     json.RawMessage
	Packages json.RawMessage
	Sections json.RawMessage
	Size     json.RawMessage
}

// DisplayName returns the name for humans
func (p ReportPayload) DisplayName() string {
	return rawText(p.Name)
}

// DisplaySize returns the size for humans
func (p ReportPayload) DisplaySize() string {
	return rawText(p.Size)
}

// rawText unquotes JSON strings and returns any other value as written
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}
