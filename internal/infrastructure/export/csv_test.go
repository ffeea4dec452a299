package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVEncoder_Encode(t *testing.T) {
	enc := NewCSVEncoder()
	data, err := enc.Encode([][]string{
		{"ID", "Description"},
		{"1", "Impresora, bandeja 2"},
		{"2", "línea\n\"dos\""},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, utf8BOM))

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Impresora, bandeja 2", records[1][1])
	assert.Equal(t, "línea\n\"dos\"", records[2][1])
}

func TestCSVEncoder_HeaderOnly(t *testing.T) {
	enc := NewCSVEncoder()
	data, err := enc.Encode([][]string{{"ID"}})
	require.NoError(t, err)
	assert.Equal(t, "\ufeffID\n", string(data))
	assert.Equal(t, "text/csv; charset=utf-8", enc.ContentType())
	assert.Equal(t, "csv", enc.Extension())
}
