// Package export writes investigation records to JSON or CSV files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	instagram "github.com/anatolykoptev/go-instagram"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned for formats other than json and csv.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "json" or "csv" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (use json or csv)", ErrUnknownFormat, s)
}

// JSON writes p with 2-space indentation. HTML and non-ASCII characters are
// written as-is.
func JSON(w io.Writer, p instagram.Profile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(p)
}

// CSV writes a Field,Value table with one row per top-level scalar field in
// key order. Object-valued fields are skipped.
func CSV(w io.Writer, p instagram.Profile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Field", "Value"}); err != nil {
		return err
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, isObject := p[k].(map[string]any); isObject {
			continue
		}
		if err := cw.Write([]string{k, formatValue(p[k])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatValue renders a scalar for the Value column: True/False for
// booleans, None for null, JSON for lists.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case bool:
		if x {
			return "True"
		}
		return "False"
	case string:
		return x
	case json.Number:
		return x.String()
	case []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

// DefaultFilename returns instagram_<username>_<YYYYMMDD_HHMMSS>.<ext>.
func DefaultFilename(username string, f Format, now time.Time) string {
	if username == "" {
		username = "unknown"
	}
	return fmt.Sprintf("instagram_%s_%s.%s", username, now.Format("20060102_150405"), f)
}

// ToFile writes p to base.<ext>, or to DefaultFilename when base is empty,
// and returns the path written.
func ToFile(base string, f Format, p instagram.Profile, now time.Time) (string, error) {
	if f != FormatJSON && f != FormatCSV {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	path := base + "." + string(f)
	if base == "" {
		path = DefaultFilename(p.String("username"), f, now)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if f == FormatJSON {
		err = JSON(file, p)
	} else {
		err = CSV(file, p)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
