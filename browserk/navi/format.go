package navi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadFormat when a query contains a malformed placeholder
var ErrBadFormat = errors.New("malformed placeholder")

// FormatWith replaces {n} placeholders in every query of l with args[n]. Use
// {{ and }} for literal braces. Name, kind and options are kept.
func FormatWith(l Locator, args ...interface{}) (Locator, error) {
	var formatted Locator

	switch t := Unwrap(l).(type) {
	case *Chain:
		items := make([]Locator, len(t.items))
		for i, item := range t.items {
			f, err := FormatWith(item, args...)
			if err != nil {
				return nil, err
			}
			items[i] = f
		}
		formatted = NewChain(items...)
	case *Selector:
		query, err := formatQuery(t.Query, args)
		if err != nil {
			return nil, errors.Wrapf(err, "formatting %s", Describe(t))
		}
		formatted = &Selector{By: t.By, Query: query}
	default:
		return nil, errors.New("unsupported locator")
	}

	if e, ok := l.(*Extended); ok {
		n := e.clone()
		n.inner = formatted
		return n, nil
	}
	return formatted, nil
}

func formatQuery(query string, args []interface{}) (string, error) {
	var b strings.Builder

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '{' && i+1 < len(query) && query[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(query) && query[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(query[i:], '}')
			if end < 0 {
				return "", errors.Wrapf(ErrBadFormat, "unclosed { at %d", i)
			}
			n, err := strconv.Atoi(query[i+1 : i+end])
			if err != nil || n < 0 {
				return "", errors.Wrapf(ErrBadFormat, "%q", query[i:i+end+1])
			}
			if n >= len(args) {
				return "", errors.Wrapf(ErrBadFormat, "index %d with %d args", n, len(args))
			}
			b.WriteString(fmt.Sprint(args[n]))
			i += end
		case c == '}':
			return "", errors.Wrapf(ErrBadFormat, "unopened } at %d", i)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
