package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	contentTypeJSON    = "application/json"
	contentTypeMsgpack = "application/msgpack"
)

// msgpackTypes are the media types accepted as MessagePack.
var msgpackTypes = []string{contentTypeMsgpack, "application/x-msgpack", "application/vnd.msgpack"}

func isMsgpackType(mediaType string) bool {
	for _, t := range msgpackTypes {
		if mediaType == t {
			return true
		}
	}
	return false
}

// wantsMsgpack reports whether the Accept header of r lists a MessagePack
// media type.
func wantsMsgpack(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && isMsgpackType(mediaType) {
			return true
		}
	}
	return false
}

// sendsMsgpack reports whether the body of r is MessagePack.
func sendsMsgpack(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && isMsgpackType(mediaType)
}

// writeEncoded writes data with the given status, as MessagePack when the
// client asks for it and as JSON otherwise.
func writeEncoded(w http.ResponseWriter, r *http.Request, status int, data any) error {
	w.Header().Add("Vary", "Accept")
	if wantsMsgpack(r) {
		w.Header().Set("Content-Type", contentTypeMsgpack)
		w.WriteHeader(status)
		return msgpack.NewEncoder(w).Encode(data)
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// decodeBody reads a JSON or MessagePack body, depending on Content-Type,
// into v.
func decodeBody(r *http.Request, body io.Reader, v any) error {
	if sendsMsgpack(r) {
		if err := msgpack.NewDecoder(body).Decode(v); err != nil {
			return fmt.Errorf("invalid msgpack body: %w", err)
		}
		return nil
	}
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
