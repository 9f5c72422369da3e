package convert

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/goccy/go-json"

	"github.com/ytget/ytkit/internal/model"
)

// Columns is the fixed CSV header, in output order
var Columns = []string{
	"id", "parent", "author", "author_id", "text", "like_count",
	"timestamp", "date", "is_favorited", "is_pinned", "video_id", "video_title",
}

// DateLayout formats derived dates as YYYY-MM-DD HH:MM:SS
const DateLayout = "2006-01-02 15:04:05"

// Unix seconds bounds of years 1 and 9999
const (
	minUnixSeconds = -62135596800
	maxUnixSeconds = 253402300799
)

// Boolean cell values
const (
	cellTrue  = "True"
	cellFalse = "False"
)

// DeriveDate sets the "date" field from a truthy "timestamp" field, in local
// time. Booleans count as 0 and 1. A timestamp that is not a number or is out
// of range yields an empty date. Records without a truthy timestamp are left
// untouched.
func DeriveDate(rec model.Comment) {
	ts, ok := rec[model.KeyTimestamp]
	if !ok || IsFalsy(ts) {
		return
	}
	rec[model.KeyDate] = formatTimestamp(ts)
}

func formatTimestamp(v any) string {
	if b, isBool := v.(bool); isBool {
		v = 0
		if b {
			v = 1
		}
	}
	secs, ok := toFloat(v)
	if !ok || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return ""
	}
	if secs < minUnixSeconds || secs > maxUnixSeconds {
		return ""
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*1e9)).Local().Format(DateLayout)
}

// Export writes the header and one row per record. Only Columns are
// projected: missing fields become empty cells and other fields are dropped.
// Rows end with CRLF; line breaks inside cells are written unchanged.
func Export(w io.Writer, records []model.Comment) error {
	rw := newRowWriter(w)

	if err := rw.Write(Columns); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to write header"), ErrWriteCSV)
	}

	row := make([]string, len(Columns))
	for i, rec := range records {
		DeriveDate(rec)
		for c, col := range Columns {
			row[c] = formatCell(rec[col])
		}
		if err := rw.Write(row); err != nil {
			return errors.Mark(errors.Wrapf(err, "failed to write row %d", i), ErrWriteCSV)
		}
	}
	return nil
}

// rowWriter ends every row with CRLF and leaves line breaks inside cells as
// they are.
type rowWriter struct {
	w   io.Writer
	buf bytes.Buffer
	cw  *csv.Writer
}

func newRowWriter(w io.Writer) *rowWriter {
	rw := &rowWriter{w: w}
	rw.cw = csv.NewWriter(&rw.buf)
	return rw
}

func (rw *rowWriter) Write(row []string) error {
	rw.buf.Reset()
	if err := rw.cw.Write(row); err != nil {
		return err
	}
	rw.cw.Flush()
	if err := rw.cw.Error(); err != nil {
		return err
	}

	line := bytes.TrimSuffix(rw.buf.Bytes(), []byte("\n"))
	line = append(line, '\r', '\n')
	_, err := rw.w.Write(line)
	return err
}

// WriteFile creates or truncates path and exports records into it. A failure
// part way through leaves the truncated file behind.
func WriteFile(path string, records []model.Comment) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "failed to create %s", path), ErrWriteCSV)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Mark(errors.Wrapf(cerr, "failed to close %s", path), ErrWriteCSV)
		}
	}()

	return Export(f, records)
}

// formatCell renders a JSON value as CSV text
func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return cellTrue
		}
		return cellFalse
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	case map[string]any, []any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}

// toFloat converts JSON and Go numeric values to float64
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}
