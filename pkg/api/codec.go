// Package api defines the leasehold.v1 Connect services: request and
// response messages, handler and client constructors, and the JSON codec
// they are exchanged with.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// Codec encodes messages as plain JSON. Messages are ordinary Go structs,
// so the default protobuf codecs do not apply.
type Codec struct{}

// Name implements connect.Codec. It selects the "application/json" content type.
func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (Codec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
}

// withOption returns a copy of opts with opt appended, so variants built
// from the same base never share a backing array.
func withOption(opts []connect.HandlerOption, opt connect.HandlerOption) []connect.HandlerOption {
	out := make([]connect.HandlerOption, 0, len(opts)+1)
	return append(append(out, opts...), opt)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
}

// serviceMux routes a service's procedures to their handlers and answers
// unknown procedures with 404.
func serviceMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

func trimBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}
