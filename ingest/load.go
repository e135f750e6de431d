package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/simtrade"
)

// Source describes where price history comes from.
type Source struct {
	Location string // file path or http(s) URL
	Format   Format // inferred from Location's extension when empty
	JSONPath string // see ReadJSON
}

// IsURL reports whether the source is remote.
func (s Source) IsURL() bool {
	return strings.HasPrefix(s.Location, "http://") || strings.HasPrefix(s.Location, "https://")
}

// format returns the explicit or inferred format.
func (s Source) format() (Format, error) {
	if s.Format != "" {
		return s.Format, nil
	}
	loc := s.Location
	if i := strings.IndexAny(loc, "?#"); i >= 0 && s.IsURL() {
		loc = loc[:i]
	}
	switch strings.ToLower(filepath.Ext(loc)) {
	case ".csv":
		return CSV, nil
	case ".json":
		return JSON, nil
	}
	return "", fmt.Errorf("cannot infer the format of %q, set it explicitly", s.Location)
}

// Open opens the source for reading and returns its size, or -1 when unknown.
// client is only used for URLs, nil means a NewDailyClient in the temporary
// directory.
func Open(ctx context.Context, client *http.Client, src Source) (io.ReadCloser, int64, error) {
	if !src.IsURL() {
		f, err := os.Open(src.Location)
		if err != nil {
			return nil, 0, fmt.Errorf("cannot open price file: %w", err)
		}
		size := int64(-1)
		if fi, err := f.Stat(); err == nil {
			size = fi.Size()
		}
		return f, size, nil
	}
	if client == nil {
		client = NewDailyClient("")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Location, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot fetch price data: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return resp.Body, resp.ContentLength, nil
}

// Read decodes rows from r in the source's format.
func Read(r io.Reader, src Source) ([]simtrade.Row, error) {
	format, err := src.format()
	if err != nil {
		return nil, err
	}
	switch format {
	case CSV:
		return ReadCSV(r)
	case JSON:
		return ReadJSON(r, src.JSONPath)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Load opens and reads the whole source.
func Load(ctx context.Context, client *http.Client, src Source) ([]simtrade.Row, error) {
	rc, _, err := Open(ctx, client, src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	rows, err := Read(rc, src)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", src.Location, err)
	}
	return rows, nil
}
