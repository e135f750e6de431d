package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/simtrade"
)

// ReadJSON reads rows from a JSON array of objects.
//
// When path is not empty it is a jsonpath expression (e.g. "$.data.prices")
// selecting the array inside a larger document. Values may be numbers or
// strings.
func ReadJSON(r io.Reader, path string) ([]simtrade.Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode json: %w", err)
	}
	if path != "" {
		v, err := jsonpath.Get(path, doc)
		if err != nil {
			return nil, fmt.Errorf("cannot evaluate %q: %w", path, err)
		}
		doc = v
	}
	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid price data: expected an array, got %T", doc)
	}

	rows := make([]simtrade.Row, 0, len(items))
	var errs []error
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Errorf("item %d: expected an object, got %T", i, item))
			continue
		}
		fields := make(map[string]string, len(obj))
		for k, v := range obj {
			fields[NormalizeKey(k)] = text(v)
		}
		rows = append(rows, newRow(fields))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return rows, nil
}

// text returns the textual value of a decoded json scalar.
func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
