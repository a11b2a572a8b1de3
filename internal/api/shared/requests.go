package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrEmptyBody indicates the request carried no body where one was required.
var ErrEmptyBody = errors.New("request body is empty")

// maxBodyBytes caps request bodies to keep decoding bounded.
const maxBodyBytes = 1 << 20 // 1 MiB

// DecodeJSON reads and decodes the request body into dst, rejecting empty
// bodies and trailing garbage.
func DecodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	// A second token means the body contained more than one JSON value.
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
