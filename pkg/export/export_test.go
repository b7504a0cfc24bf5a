package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func paymentsDataset() Dataset {
	return Dataset{
		Title:   "Student Payments",
		Headers: []string{"Student", "Rate per Class", "Classes", "Total Payment"},
		Rows: []map[string]string{
			{"Student": "Ana", "Rate per Class": "25.00", "Classes": "3", "Total Payment": "75.00"},
			{"Student": "Ben, Jr.", "Rate per Class": "30.00", "Classes": "0", "Total Payment": "0.00"},
		},
	}
}

func TestCSVExporterRoundTrip(t *testing.T) {
	data := paymentsDataset()
	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, data.Headers, records[0])
	for i, row := range data.Rows {
		for j, h := range data.Headers {
			assert.Equal(t, row[h], records[i+1][j])
		}
	}
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestXLSXExporterWritesTypedCells(t *testing.T) {
	data := paymentsDataset()
	data.Headers = append(data.Headers, "Phone", "Note")
	data.Rows[0]["Phone"] = "0812345"
	data.Rows[0]["Note"] = "1e3"
	data.Rows[1]["Phone"] = "0x10"
	data.Rows[1]["Note"] = "Inf"

	out, err := NewXLSXExporter().Render(data)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, data.Headers, rows[0])
	assert.Equal(t, "Ana", rows[1][0])
	assert.Equal(t, "0812345", rows[1][4])
	assert.Equal(t, "3", rows[1][2])
	assert.Equal(t, "1e3", rows[1][5])
	assert.Equal(t, "0x10", rows[2][4])
	assert.Equal(t, "Inf", rows[2][5])
}

func TestXLSXCellValueOnlyConvertsPlainDecimals(t *testing.T) {
	numbers := map[string]float64{"0": 0, "3": 3, "75.00": 75, "-12.5": -12.5, "0.25": 0.25}
	for raw, want := range numbers {
		assert.Equal(t, want, cellValue(raw), raw)
	}

	for _, raw := range []string{"", "Nan", "NaN", "Inf", "-inf", "1e3", "0x10", "+62812", "0812345", "1_000", "12.", ".5", " 7"} {
		assert.Equal(t, raw, cellValue(raw), raw)
	}
}

func TestPDFExporterProducesDocument(t *testing.T) {
	out, err := NewPDFExporter().Render(paymentsDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRegistryRejectsUnknownFormat(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Render("xml", paymentsDataset())
	assert.Error(t, err)

	out, err := reg.Render("csv", paymentsDataset())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
