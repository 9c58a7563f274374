package server

import (
	"net/http"
	"strings"

	"github.com/welcome/webapp/internal/handler"
)

// Route maps a method and an exact path to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Routes is the full public surface of the application. HEAD shares the
// GET handler; net/http drops the body. OPTIONS is answered for every
// pattern listed here.
var Routes = []Route{
	{Method: http.MethodGet, Pattern: "/", Handler: handler.Home},
	{Method: http.MethodHead, Pattern: "/", Handler: handler.Home},
	{Method: http.MethodGet, Pattern: "/health", Handler: handler.Health},
	{Method: http.MethodHead, Pattern: "/health", Handler: handler.Health},
}

// allowedMethods lists the methods served per pattern, OPTIONS included,
// in table order.
func allowedMethods(routes []Route) map[string][]string {
	allowed := make(map[string][]string)
	for _, rt := range routes {
		allowed[rt.Pattern] = append(allowed[rt.Pattern], rt.Method)
	}
	for p := range allowed {
		allowed[p] = append(allowed[p], http.MethodOptions)
	}
	return allowed
}

func optionsHandler(methods []string) http.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		w.WriteHeader(http.StatusOK)
	}
}
