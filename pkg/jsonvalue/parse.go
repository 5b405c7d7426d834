package jsonvalue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// DefaultMaxDepth is the default nesting limit for [Parse].
const DefaultMaxDepth = 10000

// Sentinel errors wrapped by [ParseError].
var (
	// ErrEmptyInput is returned when the input holds no JSON value.
	ErrEmptyInput = errors.New("input is empty or contains only whitespace")

	// ErrMultipleValues is returned when more than one value follows the first.
	ErrMultipleValues = errors.New("multiple JSON values found at the root")

	// ErrTooDeep is returned when nesting exceeds ParseOptions.MaxDepth.
	ErrTooDeep = errors.New("maximum nesting depth exceeded")
)

// ParseError reports malformed JSON text. Error returns the decoder's message
// unchanged so it can be shown to the user verbatim.
type ParseError struct {
	Offset int64 // byte offset where decoding stopped
	Err    error
}

func (e *ParseError) Error() string { return e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// ParseOptions configures parsing.
type ParseOptions struct {
	// MaxDepth limits container nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Parse decodes exactly one JSON value from r.
func Parse(r io.Reader) (Value, error) {
	return ParseWithOptions(r, ParseOptions{})
}

// ParseBytes decodes exactly one JSON value from b.
func ParseBytes(b []byte) (Value, error) {
	return ParseWithOptions(bytes.NewReader(b), ParseOptions{})
}

// ParseString decodes exactly one JSON value from s.
func ParseString(s string) (Value, error) {
	return ParseWithOptions(strings.NewReader(s), ParseOptions{})
}

// ParseFile decodes the JSON document stored at path.
func ParseFile(path string) (Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// MustParse is like [ParseString] but panics on error.
// It is intended for tests and examples with literal input.
func MustParse(s string) Value {
	v, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("jsonvalue: MustParse(%q): %v", s, err))
	}
	return v
}

// ParseWithOptions decodes exactly one JSON value from r using opts.
func ParseWithOptions(r io.Reader, opts ParseOptions) (Value, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := &parser{
		dec: jsontext.NewDecoder(r,
			jsontext.AllowDuplicateNames(true),
			jsontext.AllowInvalidUTF8(true),
		),
		maxDepth: opts.MaxDepth,
	}

	v, err := p.value(0)
	if err != nil {
		return nil, err
	}

	// Only whitespace may follow the root value.
	if _, err := p.dec.ReadToken(); err == nil {
		return nil, p.fail(ErrMultipleValues)
	} else if !errors.Is(err, io.EOF) {
		return nil, p.fail(err)
	}
	return v, nil
}

type parser struct {
	dec      *jsontext.Decoder
	maxDepth int
}

func (p *parser) fail(err error) error {
	return &ParseError{Offset: p.dec.InputOffset(), Err: err}
}

func (p *parser) value(depth int) (Value, error) {
	switch p.dec.PeekKind() {
	case '{':
		return p.object(depth + 1)
	case '[':
		return p.array(depth + 1)
	case '0':
		raw, err := p.dec.ReadValue()
		if err != nil {
			return nil, p.fail(err)
		}
		return Number(string(raw)), nil
	}

	tok, err := p.dec.ReadToken()
	if err != nil {
		if depth == 0 && errors.Is(err, io.EOF) {
			return nil, p.fail(ErrEmptyInput)
		}
		return nil, p.fail(err)
	}
	switch tok.Kind() {
	case 'n':
		return Null{}, nil
	case 't', 'f':
		return Bool(tok.Bool()), nil
	case '"':
		return String(tok.String()), nil
	}
	return nil, p.fail(fmt.Errorf("unexpected token %q", tok.Kind()))
}

func (p *parser) object(depth int) (Value, error) {
	if depth > p.maxDepth {
		return nil, p.fail(ErrTooDeep)
	}
	if _, err := p.dec.ReadToken(); err != nil {
		return nil, p.fail(err)
	}

	obj := NewObject()
	for p.dec.PeekKind() != '}' {
		name, err := p.dec.ReadToken()
		if err != nil {
			return nil, p.fail(err)
		}
		// The token is invalid after the next decoder call.
		key := name.String()
		v, err := p.value(depth)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
	}

	if _, err := p.dec.ReadToken(); err != nil {
		return nil, p.fail(err)
	}
	return obj, nil
}

func (p *parser) array(depth int) (Value, error) {
	if depth > p.maxDepth {
		return nil, p.fail(ErrTooDeep)
	}
	if _, err := p.dec.ReadToken(); err != nil {
		return nil, p.fail(err)
	}

	arr := Array{}
	for p.dec.PeekKind() != ']' {
		v, err := p.value(depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}

	if _, err := p.dec.ReadToken(); err != nil {
		return nil, p.fail(err)
	}
	return arr, nil
}
