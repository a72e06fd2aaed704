package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agbru/domainflow/internal/config"
	apperrors "github.com/agbru/domainflow/internal/errors"
	"github.com/agbru/domainflow/internal/orchestration"
	"github.com/agbru/domainflow/internal/ui"
)

// Verify interface compliance.
var (
	_ orchestration.Presenter = (*TextPresenter)(nil)
	_ orchestration.Presenter = (*JSONPresenter)(nil)
	_ orchestration.Presenter = (*YAMLPresenter)(nil)
)

// NewPresenter returns the presenter for format writing to w.
func NewPresenter(format string, w io.Writer) (orchestration.Presenter, error) {
	switch format {
	case config.FormatText, "":
		return &TextPresenter{Out: w}, nil
	case config.FormatJSON:
		return &JSONPresenter{Out: w}, nil
	case config.FormatYAML:
		return &YAMLPresenter{Out: w}, nil
	}
	return nil, apperrors.NewConfigError("unknown output format %q (expected one of %v)", format, config.Formats)
}

// TextPresenter writes a response as aligned "key: value" lines.
// Structs are flattened through their JSON field names; scalars are printed
// on a single line.
type TextPresenter struct {
	Out io.Writer
}

// Present implements orchestration.Presenter.
func (p *TextPresenter) Present(response any) error {
	if response == nil {
		_, err := fmt.Fprintln(p.Out, ui.Success("ok"))
		return err
	}

	fields, ok := toFields(response)
	if !ok {
		_, err := fmt.Fprintln(p.Out, ui.Value(fmt.Sprint(response)))
		return err
	}

	keys := make([]string, 0, len(fields))
	width := 0
	for k := range fields {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		pad := strings.Repeat(" ", width-len(k))
		fmt.Fprintf(&b, "%s:%s %s\n", ui.Key(k), pad, ui.Value(formatValue(fields[k])))
	}
	_, err := io.WriteString(p.Out, b.String())
	return err
}

// toFields converts response to a flat map when it encodes as a JSON object.
// Responses JSON cannot encode are reported as not being objects.
func toFields(response any) (map[string]any, bool) {
	raw, err := json.Marshal(response)
	if err != nil {
		return nil, false
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Not an object.
		return nil, false
	}
	return fields, fields != nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		return v
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	default:
		return fmt.Sprint(v)
	}
}

// JSONPresenter writes a response as indented JSON.
type JSONPresenter struct {
	Out io.Writer
}

// Present implements orchestration.Presenter.
func (p *JSONPresenter) Present(response any) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(response); err != nil {
		return fmt.Errorf("encoding response as JSON: %w", err)
	}
	return nil
}

// YAMLPresenter writes a response as a YAML document.
type YAMLPresenter struct {
	Out io.Writer
}

// Present implements orchestration.Presenter.
func (p *YAMLPresenter) Present(response any) error {
	enc := yaml.NewEncoder(p.Out)
	enc.SetIndent(2)
	if err := enc.Encode(response); err != nil {
		return fmt.Errorf("encoding response as YAML: %w", err)
	}
	return enc.Close()
}
