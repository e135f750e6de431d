package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/simtrade"
)

// ReadCSV reads rows from a CSV file with a header line.
func ReadCSV(r io.Reader) ([]simtrade.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty csv file")
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read csv header: %w", err)
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeKey(h)
	}

	var rows []simtrade.Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read csv line %d: %w", line, err)
		}
		if len(record) == 1 && record[0] == "" {
			continue
		}
		fields := make(map[string]string, len(keys))
		for i, v := range record {
			if i < len(keys) {
				fields[keys[i]] = v
			}
		}
		rows = append(rows, newRow(fields))
	}
	return rows, nil
}
