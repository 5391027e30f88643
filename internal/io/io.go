package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// resolveFormat normalizes a format flag. "auto" (or empty) is decided by
// the file extension, defaulting to JSON unless the path ends in .yaml/.yml.
func resolveFormat(path, format string) (string, error) {
	actual := strings.ToLower(strings.TrimSpace(format))
	switch actual {
	case "", "auto":
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return "yaml", nil
		default:
			return "json", nil
		}
	case "json", "yaml":
		return actual, nil
	case "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported format: %q", format)
	}
}

// ReadReadings reads a readings document (JSON or YAML) into raw string
// values keyed by reading name, so file input goes through the same parsing
// as the interactive form.
// The format parameter can be "json", "yaml", or "auto" (default).
func ReadReadings(path string, format string) (map[string]string, error) {
	actual, err := resolveFormat(path, format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeReadings(f, actual)
}

// DecodeReadings decodes a readings document of the given format ("json" or
// "yaml") from r.
func DecodeReadings(r io.Reader, format string) (map[string]string, error) {
	doc := map[string]any{}
	switch format {
	case "yaml":
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			if err == io.EOF {
				return map[string]string{}, nil
			}
			return nil, fmt.Errorf("decode yaml readings: %w", err)
		}
	case "json":
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json readings: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}

	out := make(map[string]string, len(doc))
	for k, v := range doc {
		out[strings.ToLower(strings.TrimSpace(k))] = stringify(v)
	}
	return out, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// WriteDocument writes v to w as indented JSON or YAML.
func WriteDocument(w io.Writer, v any, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}
