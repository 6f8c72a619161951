package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	stdhttp "net/http"
	"strings"

	perr "todoapi/internal/platform/errors"
)

const maxBodyBytes = 1 << 20

// decodeJSON parses any JSON value, primitives included
func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "invalid JSON body")
	}
	if dec.More() {
		return nil, perr.JSONErrf("invalid JSON body: unexpected trailing data")
	}
	return v, nil
}

// readLiveBody decodes a live request body when it is declared as JSON
// Other bodies are ignored and the handler sees nil
func readLiveBody(r *stdhttp.Request) (any, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != ContentTypeJSON {
		return nil, nil
	}
	b, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "read request body")
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	return decodeJSON(b)
}

// emulatedBody parses body only when the content type before ";" is exactly
// application/json, otherwise the raw string is passed through
func emulatedBody(body string, h stdhttp.Header) (any, error) {
	ct, _, _ := strings.Cut(h.Get("Content-Type"), ";")
	if ct == ContentTypeJSON {
		return decodeJSON([]byte(body))
	}
	return body, nil
}

// flattenHeaders lowercases names and joins repeated values
func flattenHeaders(h stdhttp.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vv := range h {
		out[strings.ToLower(k)] = strings.Join(vv, ", ")
	}
	return out
}
