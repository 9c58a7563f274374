package handler

import (
	"io"
	"net/http"
)

// Greeting is the HTML document served at the site root.
const Greeting = "<h1>Welcome to My Flask App</h1>"

// Home serves the greeting page.
func Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, Greeting)
}
