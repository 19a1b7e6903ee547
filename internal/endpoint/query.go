package endpoint

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"togglv9/internal/codec"
	"togglv9/internal/optional"
)

// QueryEncoder is implemented by GET request shapes.
type QueryEncoder interface {
	EncodeQuery() Query
}

// Query is an ordered list of query pairs. Unlike url.Values it keeps
// insertion order, so the encoded string follows field declaration order.
type Query struct {
	keys   []string
	values []string
}

// Set appends key=value.
func (q *Query) Set(key, value string) {
	q.keys = append(q.keys, key)
	q.values = append(q.values, value)
}

// Bool appends key=true|false when v is present.
func (q *Query) Bool(key string, v optional.Value[bool]) {
	if b, ok := v.Get(); ok {
		q.Set(key, strconv.FormatBool(b))
	}
}

// Epoch appends key=<unix seconds> when v is present.
func (q *Query) Epoch(key string, v optional.Value[time.Time]) {
	if t, ok := v.Get(); ok {
		q.Set(key, codec.EncodeEpoch(t))
	}
}

// Date appends key=YYYY-MM-DD when v is present.
func (q *Query) Date(key string, v optional.Value[codec.Date]) {
	if d, ok := v.Get(); ok {
		q.Set(key, d.String())
	}
}

// Len returns the number of pairs.
func (q Query) Len() int { return len(q.keys) }

// Values returns the pairs as url.Values.
func (q Query) Values() url.Values {
	out := make(url.Values, len(q.keys))
	for i, k := range q.keys {
		out.Add(k, q.values[i])
	}
	return out
}

// Encode renders the pairs in insertion order. An empty Query encodes to "".
func (q Query) Encode() string {
	var b strings.Builder
	for i, k := range q.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.values[i]))
	}
	return b.String()
}
