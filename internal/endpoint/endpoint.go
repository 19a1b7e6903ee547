// Package endpoint describes the Toggl Track v9 operations: where each one
// lives, which path parameters it needs and the shapes it sends and receives.
//
// A descriptor carries no behaviour of its own; the typed client in
// internal/adapter/toggl consumes every descriptor through one generic
// call routine.
package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// APIPrefix is prepended to every descriptor path.
const APIPrefix = "/api/v9"

// ErrUnboundPathParameter is returned when a path template token has no value.
var ErrUnboundPathParameter = errors.New("unbound path parameter")

// None is the request or response shape of operations without one.
type None struct{}

// Endpoint describes one API operation. Req is the query or body shape,
// Resp the decoded response shape.
type Endpoint[Req, Resp any] struct {
	Name   string
	Method string
	// Path is relative to APIPrefix and may hold {name} tokens.
	Path string
}

// Params binds path template tokens to values.
type Params map[string]string

// PathBinder is implemented by typed path parameter records.
type PathBinder interface {
	PathParams() Params
}

// URL resolves e against base. Path tokens are substituted from params and,
// when req implements QueryEncoder, its present fields become the query string.
func (e Endpoint[Req, Resp]) URL(base *url.URL, params Params, req Req) (*url.URL, error) {
	path, err := Resolve(e.Path, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	u := *base
	u.RawPath = strings.TrimRight(base.EscapedPath(), "/") + APIPrefix + path
	if u.Path, err = url.PathUnescape(u.RawPath); err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	if qe, ok := any(req).(QueryEncoder); ok {
		u.RawQuery = qe.EncodeQuery().Encode()
	}
	return &u, nil
}

// Resolve substitutes every {name} token in template. It fails before any
// network activity if a token has no non-empty binding.
func Resolve(template string, params Params) (string, error) {
	var b strings.Builder
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated token in %q", template)
		}
		name := rest[open+1 : open+end]
		val, ok := params[name]
		if !ok || val == "" {
			return "", fmt.Errorf("%w: %s", ErrUnboundPathParameter, name)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(val))
		rest = rest[open+end+1:]
	}
}
