package molit

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/wonny/homeboard/backend/internal/contracts"
)

// successCodes are the resultCode values of a healthy 공공데이터포털 response
var successCodes = map[string]bool{"00": true, "000": true}

// ParsePayload extracts raw rows from a MOLIT response body.
//
// Envelopes are tried in order: data[], response.body.items.item (array or
// single object), response.body.items[]. Numbers are kept as json.Number.
// Non-JSON bodies fail with ErrUnparsablePayload, an error resultCode with
// ErrUpstreamStatus, and zero rows with ErrNoUpstreamRows.
func ParsePayload(body []byte) ([]contracts.RawRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUnparsablePayload,
			"expected JSON object, got %q", snippet(trimmed))
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUnparsablePayload,
			"decode: %v", err)
	}

	// 공공데이터포털 JSON 오류 헤더 (예: 서비스키 미등록)
	if code, msg, ok := resultHeader(payload); ok && !successCodes[code] {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrUpstreamStatus,
			"resultCode %s: %s", code, msg)
	}

	rows := toRecords(candidates(payload))
	if len(rows) == 0 {
		return nil, contracts.NewUpstreamError(sourceName, contracts.ErrNoUpstreamRows, "")
	}
	return rows, nil
}

// candidates returns the first envelope that holds rows
func candidates(payload map[string]any) any {
	if data, ok := payload["data"]; ok && data != nil {
		return data
	}

	body := dig(payload, "response", "body")
	if body == nil {
		body = dig(payload, "ApartmentTransactionService", "body")
	}
	items, ok := body["items"]
	if !ok {
		return nil
	}
	if m, ok := items.(map[string]any); ok {
		return m["item"]
	}
	return items
}

// toRecords accepts an array of objects or a single object
func toRecords(v any) []contracts.RawRecord {
	switch x := v.(type) {
	case []any:
		out := make([]contracts.RawRecord, 0, len(x))
		for _, item := range x {
			if m, ok := item.(map[string]any); ok {
				out = append(out, contracts.RawRecord(m))
			}
		}
		return out
	case map[string]any:
		return []contracts.RawRecord{contracts.RawRecord(x)}
	default:
		return nil
	}
}

func resultHeader(payload map[string]any) (code, msg string, ok bool) {
	header := dig(payload, "response", "header")
	if header == nil {
		return "", "", false
	}
	c, ok := header["resultCode"]
	if !ok || c == nil {
		return "", "", false
	}
	code = strings.TrimSpace(toString(c))
	msg = strings.TrimSpace(toString(header["resultMsg"]))
	return code, msg, code != ""
}

func dig(m map[string]any, path ...string) map[string]any {
	cur := m
	for _, key := range path {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case nil:
		return ""
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

func snippet(b []byte) string {
	const limit = 80
	s := string(b)
	if r := []rune(s); len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return s
}
