// Package web holds the small shared pieces of the HTTP surface: response
// envelopes, query parsing and middleware.
package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stockroom/stockroom-service/internal/model"
)

type dataEnvelope struct {
	Data interface{} `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

func WriteData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dataEnvelope{Data: data})
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: msg})
}

// ListingSpecFromQuery reads offset/limit/sort query parameters and normalizes
// them.
func ListingSpecFromQuery(r *http.Request) model.ListingSpec {
	q := r.URL.Query()
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)
	limit, _ := strconv.Atoi(q.Get("limit"))
	return model.NormalizeListingSpec(offset, limit, q.Get("sort"))
}

// PathID parses the named path segment as an int64 id.
func PathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
