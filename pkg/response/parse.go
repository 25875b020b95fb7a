package response

import (
	"fmt"
	"net/http"

	errs "vkbackup/pkg/errors"
)

// ErrorExtractor looks for a backend-reported failure in a decoded body and
// returns its message.
type ErrorExtractor func(root Value) (message string, found bool)

type parseOptions struct {
	delimiter string
	apiError  ErrorExtractor
}

// Option configures Parse
type Option func(*parseOptions)

// WithDelimiter overrides the path segment separator
func WithDelimiter(sep string) Option {
	return func(o *parseOptions) {
		if sep != "" {
			o.delimiter = sep
		}
	}
}

// WithAPIError installs a backend-specific error detector
func WithAPIError(fn ErrorExtractor) Option {
	return func(o *parseOptions) {
		o.apiError = fn
	}
}

// Parse turns a raw HTTP reply into an envelope holding the value found at path.
func Parse(status int, body []byte, path string, opts ...Option) Envelope[Value] {
	o := parseOptions{delimiter: DefaultDelimiter}
	for _, opt := range opts {
		opt(&o)
	}

	if status < 200 || status >= 300 {
		return Fail[Value](&errs.Error{
			Type:    errs.ErrorTypeTransport,
			Message: fmt.Sprintf("Request error: %d (%s)", status, http.StatusText(status)),
			Code:    status,
		})
	}

	if len(body) == 0 && len(SplitPath(path, o.delimiter)) == 0 {
		return Info(Null, MsgEmptyBody)
	}

	root, err := DecodeValue(body)
	if err != nil {
		return Fail[Value](&errs.Error{Type: errs.ErrorTypeDecode, Message: MsgDecodeError, Code: status})
	}

	if o.apiError != nil {
		if msg, found := o.apiError(root); found {
			return Fail[Value](&errs.Error{Type: errs.ErrorTypeAPI, Message: MsgAPIErrorPrefix + msg, Code: status})
		}
	}

	return Extract(root, path, o.delimiter)
}

// Decode converts the value held by a successful envelope into T
func Decode[T any](e Envelope[Value]) Envelope[T] {
	return Then(e, func(v Value) Envelope[T] {
		var out T
		if v.IsNull() {
			return Info(out, e.Message)
		}
		if err := v.Decode(&out); err != nil {
			return Fail[T](errs.New(errs.ErrorTypeDecode, MsgDecodeError))
		}
		return OK(out)
	})
}
