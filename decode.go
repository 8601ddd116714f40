package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to read a portfolio snapshot.
//
// A snapshot is a single json object using the camelCase field names of the
// Portfolio type. The reader never fills a missing required field with a zero.

// requiredFields must be present in a snapshot.
var requiredFields = []string{"address", "lastUpdated", "metrics"}

// ErrMissingField is returned when a required snapshot field is absent.
var ErrMissingField = errors.New("missing required field")

// DecodePortfolio reads a snapshot from 'r' and validates it.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read portfolio snapshot: %w", err)
	}
	return UnmarshalPortfolio(data)
}

// DecodePortfolioAt reads a json document from 'r', selects the snapshot object with the
// jsonpath expression 'path' (like "$.data.portfolio") and decodes it.
//
// An empty path selects the whole document.
func DecodePortfolioAt(r io.Reader, path string) (*Portfolio, error) {
	if path == "" || path == "$" {
		return DecodePortfolio(r)
	}
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse json document: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot select %q: %w", path, err)
	}
	// jsonpath may return a list of 1 answer, or a single answer: keep the first one.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, fmt.Errorf("cannot select %q: no match", path)
		}
		jval = jlist[0]
	}
	if _, ok := jval.(map[string]any); !ok {
		return nil, fmt.Errorf("cannot select %q: got %T, want an object", path, jval)
	}
	data, err := json.Marshal(jval)
	if err != nil {
		return nil, fmt.Errorf("cannot re-encode %q: %w", path, err)
	}
	return UnmarshalPortfolio(data)
}

// UnmarshalPortfolio decodes and validates a snapshot from its json form.
func UnmarshalPortfolio(data []byte) (*Portfolio, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("cannot parse portfolio snapshot: %w", err)
	}
	var errs []error
	for _, name := range requiredFields {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			errs = append(errs, fmt.Errorf("%w %q", ErrMissingField, name))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	p := new(Portfolio)
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("cannot parse portfolio snapshot: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
