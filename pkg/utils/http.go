// Package utils provides common utility functions.
package utils

import "net/http"

// BuildHeaders creates request headers carrying userAgent plus any custom
// headers. Custom entries replace defaults with the same name.
func BuildHeaders(userAgent string, customHeaders map[string]string) http.Header {
	headers := http.Header{}

	if userAgent != "" {
		headers.Set("User-Agent", userAgent)
	}

	for key, value := range customHeaders {
		headers.Set(key, value)
	}

	return headers
}
