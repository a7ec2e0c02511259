// Package input - Usage file loading
package input

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	apperrors "ghcost/internal/errors"
)

// Format is a usage document encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatOf returns the encoding of a file by extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", apperrors.Inputf("unsupported usage file extension %q (use .yaml, .json or .hcl)", filepath.Ext(path))
	}
}

// LoadFile reads a usage document, picking the decoder from the extension
func LoadFile(path string) (Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Document{}, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Document{}, apperrors.Wrap(apperrors.TypeInput, "reading usage file", err)
	}
	doc, err := Decode(format, path, src)
	if err != nil {
		return Document{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return doc, nil
}

// Decode parses src in the given format. filename only appears in diagnostics.
func Decode(format Format, filename string, src []byte) (Document, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(bytes.NewReader(src))
	case FormatJSON:
		return DecodeJSON(bytes.NewReader(src))
	case FormatHCL:
		return DecodeHCL(filename, src)
	default:
		return Document{}, apperrors.Inputf("unsupported usage format %q", format)
	}
}

// DecodeYAML parses a YAML usage document; unknown keys are rejected
func DecodeYAML(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return Document{}, apperrors.Parsing("decoding YAML usage", err)
	}
	return doc, nil
}

// DecodeJSON parses a JSON usage document; unknown keys are rejected
func DecodeJSON(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return Document{}, apperrors.Parsing("decoding JSON usage", err)
	}
	return doc, nil
}

// DecodeHCL parses an HCL usage document:
//
//	team_size = 5
//	compute "linux" {
//	  jobs_per_day     = 10
//	  duration_minutes = 5
//	}
func DecodeHCL(filename string, src []byte) (Document, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return Document{}, apperrors.Parsing("parsing HCL usage", diagError(diags))
	}

	var doc Document
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return Document{}, apperrors.Parsing("decoding HCL usage", diagError(diags))
	}
	return doc, nil
}

// diagError keeps only error diagnostics
func diagError(diags hcl.Diagnostics) error {
	var errs hcl.Diagnostics
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			errs = append(errs, d)
		}
	}
	return errs
}

// DecodeForm parses the JSON state of the interactive form
func DecodeForm(r io.Reader) (Form, error) {
	form := NewForm()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&form); err != nil && err != io.EOF {
		return Form{}, apperrors.Parsing("decoding form", err)
	}
	return form, nil
}
