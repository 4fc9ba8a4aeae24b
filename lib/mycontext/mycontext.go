package mycontext

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
)

type CtxTraceContext struct{}

// ContextFromHTTPRequest derives a request-scoped context that carries the
// cloud trace identifier when running on Google Cloud.
func ContextFromHTTPRequest(r *http.Request) context.Context {
	var trace string

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	traceHeader := r.Header.Get("X-Cloud-Trace-Context")
	traceParts := strings.Split(traceHeader, "/")
	if len(traceParts) > 0 && len(traceParts[0]) > 0 {
		trace = fmt.Sprintf("projects/%s/traces/%s", projectID, traceParts[0])
	}

	return context.WithValue(r.Context(), CtxTraceContext{}, trace)
}
