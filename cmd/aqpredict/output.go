package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/idlab-discover/aqpredict-cli/internal/apperr"
	aqio "github.com/idlab-discover/aqpredict-cli/internal/io"
)

const (
	outputPretty = "pretty"
	outputJSON   = "json"
	outputYAML   = "yaml"
)

// resolveOutput validates an --output value.
func resolveOutput(s string) (string, error) {
	o := strings.ToLower(strings.TrimSpace(s))
	switch o {
	case "":
		return outputPretty, nil
	case outputPretty, outputJSON, outputYAML:
		return o, nil
	case "yml":
		return outputYAML, nil
	default:
		return "", apperr.Userf("invalid --output %q (expected json|yaml|pretty)", s)
	}
}

// documenter is implemented by payloads that keep the body as sent.
type documenter interface {
	Document() any
}

// writeOutput prints v as a document, or calls pretty for styled output.
func writeOutput(w io.Writer, format string, v any, pretty func() string) error {
	if format == outputPretty {
		_, err := fmt.Fprintln(w, pretty())
		return err
	}
	if d, ok := v.(documenter); ok {
		v = d.Document()
	}
	return aqio.WriteDocument(w, v, format)
}
