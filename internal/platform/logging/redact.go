package logging

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/m-mizutani/masq"
)

// Redacted replaces masked values. It matches masq's default marker.
const Redacted = "[REDACTED]"

// sensitiveHeaders are lower-case header names whose values never reach a log.
var sensitiveHeaders = []string{
	"authorization",
	"proxy-authorization",
	"cookie",
	"set-cookie",
	"x-api-key",
}

// sensitiveFields are attribute keys masked wherever they appear, including
// inside groups and structs.
var sensitiveFields = []string{"password", "secret", "token", "api_key", "feed_token"}

var sensitivePrefixes = []string{"secret_", "api_key", "token_"}

var sensitiveValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`),
	// Three base64url segments of ten or more characters: a JWT, not a version string.
	regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`),
	regexp.MustCompile(`(?i)(api[_\-]?key|apikey)\s*[:=]\s*\S+`),
}

// IsSensitiveHeader reports whether the named header carries credentials.
func IsSensitiveHeader(name string) bool {
	return slices.Contains(sensitiveHeaders, strings.ToLower(name))
}

// redactor builds the masq ReplaceAttr hook installed by New.
func redactor() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, len(sensitiveHeaders)+len(sensitiveFields)+len(sensitivePrefixes)+len(sensitiveValues))
	for _, name := range slices.Concat(sensitiveHeaders, sensitiveFields) {
		opts = append(opts, masq.WithFieldName(name))
	}
	for _, prefix := range sensitivePrefixes {
		opts = append(opts, masq.WithFieldPrefix(prefix))
	}
	for _, re := range sensitiveValues {
		opts = append(opts, masq.WithRegex(re))
	}
	return masq.New(opts...)
}
