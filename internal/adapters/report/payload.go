package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/renato0307/covrun/internal/domain"
)

const payloadScriptType = "application/json"

type parseState int

const (
	stateOutside parseState = iota
	stateInsideTargetScript
)

// ExtractEmbeddedPayload returns the text of the <script type="application/json">
// element in doc. When several exist, the last one wins.
func ExtractEmbeddedPayload(doc string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(doc))
	state := stateOutside
	var (
		found   bool
		payload string
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("failed to tokenize report: %w", err)
			}
			if !found {
				return "", &domain.HarnessError{
					Err:  fmt.Errorf("no <script type=%q> element", payloadScriptType),
					Kind: domain.ErrPayloadNotFound,
					Op:   "extract payload",
				}
			}
			return payload, nil

		case html.StartTagToken:
			if isPayloadScript(z) {
				state = stateInsideTargetScript
			}

		case html.TextToken:
			if state == stateInsideTargetScript {
				payload = string(z.Text())
				found = true
			}

		case html.EndTagToken:
			state = stateOutside
		}
	}
}

func isPayloadScript(z *html.Tokenizer) bool {
	name, hasAttr := z.TagName()
	if string(name) != "script" {
		return false
	}
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) == "type" && string(val) == payloadScriptType {
			return true
		}
	}
	return false
}

// ValidatePayload parses text as a JSON object and checks the required
// report keys, in order, reporting the first one missing. Values are not
// type checked.
func ValidatePayload(text string) (domain.ReportPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return domain.ReportPayload{}, &domain.HarnessError{
			Err:  err,
			Kind: domain.ErrMalformedPayload,
			Op:   "validate payload",
		}
	}

	for _, key := range domain.RequiredPayloadKeys {
		if _, ok := fields[key]; !ok {
			return domain.ReportPayload{}, schemaViolation(key, errors.New("missing key"))
		}
	}

	return domain.ReportPayload{
		Name:     fields["name"],
		Packages: fields["packages"],
		Sections: fields["sections"],
		Size:     fields["size"],
	}, nil
}

func schemaViolation(key string, err error) error {
	return &domain.HarnessError{
		Err:  err,
		Key:  key,
		Kind: domain.ErrSchemaViolation,
		Op:   "validate payload",
	}
}

// ValidateHTML extracts and validates the payload embedded in an HTML report
func ValidateHTML(doc string) (domain.ReportPayload, error) {
	text, err := ExtractEmbeddedPayload(doc)
	if err != nil {
		return domain.ReportPayload{}, err
	}
	return ValidatePayload(text)
}
