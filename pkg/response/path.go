package response

import (
	"strings"

	errs "vkbackup/pkg/errors"
)

// DefaultDelimiter separates segments of an extraction path
const DefaultDelimiter = ","

// Messages reported by Parse and Extract
const (
	MsgEmptyBody      = "Response body is empty"
	MsgDecodeError    = "JSON decode error"
	MsgObjectNotFound = "Object not found"
	MsgAPIErrorPrefix = "API error: "
)

// SplitPath breaks a path into trimmed, non-empty segments. "a,,b" and
// " a , b " both yield [a b].
func SplitPath(path, sep string) []string {
	if sep == "" {
		sep = DefaultDelimiter
	}
	var segments []string
	for _, part := range strings.Split(path, sep) {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Extract walks path through root. A list reached before the path is
// exhausted is returned as is, since lists have no named fields. A missing
// or null segment fails with MsgObjectNotFound.
func Extract(root Value, path, sep string) Envelope[Value] {
	current := root
	for _, segment := range SplitPath(path, sep) {
		if current.Kind() == KindList {
			return OK(current)
		}
		next, ok := current.Field(segment)
		if !ok {
			return Fail[Value](errs.New(errs.ErrorTypePathNotFound, MsgObjectNotFound))
		}
		current = next
	}
	return OK(current)
}
