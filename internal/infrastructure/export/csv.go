// Package export encodes report tables for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
)

var _ usecases.TableEncoder = (*CSVEncoder)(nil)

// utf8BOM lets spreadsheet applications detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type CSVEncoder struct {
	comma rune
}

func NewCSVEncoder() *CSVEncoder {
	return &CSVEncoder{comma: ','}
}

func (e *CSVEncoder) Encode(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = e.comma
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *CSVEncoder) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (e *CSVEncoder) Extension() string {
	return "csv"
}
