package rest

import (
	_ "embed"
	"net/http"
)

//go:embed static/index.html
var indexHTML []byte

// Page serves the widget page.
func Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML) //nolint:errcheck
}
