package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// pathInt64 reads a numeric path variable. Routes constrain these to
// digits, so a parse failure means a broken route table.
func pathInt64(req *http.Request, name string) int64 {
	v, _ := strconv.ParseInt(mux.Vars(req)[name], 10, 64)
	return v
}

func pathInt32(req *http.Request, name string) int32 {
	v, _ := strconv.ParseInt(mux.Vars(req)[name], 10, 32)
	return int32(v)
}

// queryInt64 reads an optional numeric query parameter
func queryInt64(req *http.Request, name string) *int64 {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryInt reads an optional numeric query parameter with a default
func queryInt(req *http.Request, name string, def int) int {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
