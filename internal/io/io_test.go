package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestResolveFormat(t *testing.T) {
	tcs := []struct {
		path, format, want string
		ok                 bool
	}{
		{"r.json", "auto", "json", true},
		{"r.yaml", "", "yaml", true},
		{"r.YML", "auto", "yaml", true},
		{"r.txt", "auto", "json", true},
		{"r.json", " YAML ", "yaml", true},
		{"r.json", "yml", "yaml", true},
		{"r.json", "xml", "", false},
	}
	for _, tc := range tcs {
		got, err := resolveFormat(tc.path, tc.format)
		if (err == nil) != tc.ok || got != tc.want {
			t.Fatalf("resolveFormat(%q,%q) = (%q,%v), want (%q, ok=%v)", tc.path, tc.format, got, err, tc.want, tc.ok)
		}
	}
}

func TestReadReadings_JSON(t *testing.T) {
	p := writeFile(t, "readings.json", `{"pm25": 10, "PM10": "20", "nh3": 0.5, "co": null}`)
	got, err := ReadReadings(p, "auto")
	if err != nil {
		t.Fatalf("ReadReadings: %v", err)
	}
	want := map[string]string{"pm25": "10", "pm10": "20", "nh3": "0.5", "co": ""}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("got[%q] = %q, want %q (all: %v)", k, got[k], v, got)
		}
	}
}

func TestReadReadings_YAML(t *testing.T) {
	p := writeFile(t, "readings.yaml", "pm25: 10\nbenzene: 0.1\ntoluene: abc\n")
	got, err := ReadReadings(p, "auto")
	if err != nil {
		t.Fatalf("ReadReadings: %v", err)
	}
	if got["pm25"] != "10" || got["benzene"] != "0.1" || got["toluene"] != "abc" {
		t.Fatalf("unexpected values: %v", got)
	}
}

func TestReadReadings_EmptyYAML(t *testing.T) {
	p := writeFile(t, "empty.yaml", "")
	got, err := ReadReadings(p, "auto")
	if err != nil {
		t.Fatalf("ReadReadings: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no values, got %v", got)
	}
}

func TestReadReadings_Errors(t *testing.T) {
	if _, err := ReadReadings(filepath.Join(t.TempDir(), "missing.json"), "auto"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	p := writeFile(t, "bad.json", `{"pm25":`)
	if _, err := ReadReadings(p, "json"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := ReadReadings(p, "xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestWriteDocument(t *testing.T) {
	doc := map[string]any{"prediction": "Good", "confidence": 92}

	var jb bytes.Buffer
	if err := WriteDocument(&jb, doc, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(jb.Bytes(), &back); err != nil {
		t.Fatalf("decode json output: %v", err)
	}
	if back["prediction"] != "Good" {
		t.Fatalf("json output = %s", jb.String())
	}
	if !strings.Contains(jb.String(), "\n  \"") {
		t.Fatalf("expected indented json, got %s", jb.String())
	}

	var yb bytes.Buffer
	if err := WriteDocument(&yb, doc, "yaml"); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(yb.String(), "prediction: Good") {
		t.Fatalf("yaml output = %q", yb.String())
	}

	if err := WriteDocument(&yb, doc, "xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
