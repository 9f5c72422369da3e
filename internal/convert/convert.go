package convert

import (
	"os"

	"github.com/cockroachdb/errors"

	"github.com/ytget/ytkit/internal/model"
	"github.com/ytget/ytkit/internal/platform"
)

// CSVExtension replaces the input extension when no output path is given
const CSVExtension = ".csv"

// Report describes a finished conversion
type Report struct {
	InputPath  string
	OutputPath string
	Shape      model.Shape
	Groups     int // top-level elements of a grouped document, 0 for flat
	Rows       int
	Summary    []GroupSummary
}

// Converter runs the JSON to CSV pipeline
type Converter struct {
	opts FlattenOptions
}

// NewConverter creates a converter with the given flatten options
func NewConverter(opts FlattenOptions) *Converter {
	return &Converter{opts: opts}
}

// DefaultOutputPath returns inputPath with its extension replaced by .csv
func DefaultOutputPath(inputPath string) string {
	return platform.ReplaceExtension(inputPath, CSVExtension)
}

// ConvertFile reads inputPath, flattens it and writes the CSV to outputPath
// (or the default path when empty). ErrEmptyInput and ErrNoComments are
// returned without touching the output file.
func (c *Converter) ConvertFile(inputPath, outputPath string) (*Report, error) {
	if !platform.FileExists(inputPath) {
		return nil, errors.Wrapf(ErrInputNotFound, "%s", inputPath)
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath(inputPath)
	}

	data, err := readDocument(inputPath)
	if err != nil {
		return nil, err
	}

	if IsFalsy(data) {
		return nil, ErrEmptyInput
	}

	doc, ok := data.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedDocument, "got %T", data)
	}

	records, shape, err := Flatten(doc, c.opts)
	if err == nil || errors.Is(err, ErrNoComments) {
		logShape(shape)
	}
	if err != nil {
		return nil, err
	}

	report := &Report{
		InputPath:  inputPath,
		OutputPath: outputPath,
		Shape:      shape,
		Rows:       len(records),
		Summary:    Summarize(doc, shape),
	}
	if shape == model.ShapeGrouped {
		report.Groups = len(doc)
	}

	platform.LogGeneral("Converting %d comments to CSV...", len(records))
	if err := WriteFile(outputPath, records); err != nil {
		return report, err
	}

	return report, nil
}

func logShape(shape model.Shape) {
	if shape == model.ShapeGrouped {
		platform.LogGeneral("Detected playlist structure.")
		return
	}
	platform.LogGeneral("Detected single video structure.")
}

func readDocument(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrInputNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	return Decode(f)
}
