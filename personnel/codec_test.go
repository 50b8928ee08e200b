package personnel_test

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/asn-monitor/personnel"
	"github.com/warp/asn-monitor/schedule"
)

func TestDecodeRecords_BrowserExport(t *testing.T) {
	// GIVEN: a document exported by the browser application
	doc := `[
	  {
	    "id": "7f1c",
	    "nama": "Siti Aminah",
	    "nip": "198703122010012004",
	    "telp": "081234567890",
	    "tmtPns": "2010-01-01",
	    "riwayatTmtKgb": "2023-04-01",
	    "riwayatTmtPangkat": "",
	    "jadwalKgbBerikutnya": "2025-04-01",
	    "jadwalPangkatBerikutnya": "",
	    "createdAt": "2024-05-02T08:15:00.123Z",
	    "extra": {"ignored": true}
	  }
	]`

	records, err := personnel.DecodeRecords([]byte(doc))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "7f1c", r.ID)
	assert.Equal(t, "Siti Aminah", r.Name)
	assert.Equal(t, "198703122010012004", r.EmployeeNumber)
	assert.Equal(t, "081234567890", r.Phone)
	assert.Equal(t, "2023-04-01", r.LastSalaryIncrementDate.String())
	assert.True(t, r.LastRankPromotionDate.IsZero())
	assert.Equal(t, "2025-04-01", r.NextSalaryIncrementDate.String())
	assert.Equal(t, 2024, r.CreatedAt.Year())
}

func TestDecodeRecords_EmptyArray(t *testing.T) {
	records, err := personnel.DecodeRecords([]byte(" [] "))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeRecords_InvalidDatesDegrade(t *testing.T) {
	records, err := personnel.DecodeRecords([]byte(`[{"nama":"A","jadwalKgbBerikutnya":"31/12/2025","jadwalPangkatBerikutnya":"2026-01-01"}]`))
	require.NoError(t, err)

	assert.True(t, records[0].NextSalaryIncrementDate.IsZero())
	assert.Equal(t, "2026-01-01", records[0].NextRankPromotionDate.String())
}

func TestDecodeRecords_FormatErrors(t *testing.T) {
	cases := map[string]int{
		`{"nama":"A"}`:          -1,
		`[{"nama":"A"}, "x"]`:   1,
		`[{"nama":"A"}, null]`:  1,
		`[{"riwayatTmtKgb":1}]`: 0,
	}
	for doc, index := range cases {
		_, err := personnel.DecodeRecords([]byte(doc))
		var fErr *personnel.ImportFormatError
		require.ErrorAs(t, err, &fErr, doc)
		assert.Equal(t, index, fErr.Index, doc)
	}
}

func TestEncodeRecords_Shape(t *testing.T) {
	rec := personnel.Record{
		ID:                      "a",
		Name:                    "A",
		EmployeeNumber:          "198703122010012004",
		LastSalaryIncrementDate: schedule.MustParseDate("2020-01-15"),
		CreatedAt:               time.Date(2024, 5, 2, 8, 15, 0, 0, time.UTC),
	}
	rec.Refresh()

	out, err := personnel.EncodeRecords([]personnel.Record{rec})
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, json.Unmarshal(out, &got))
	require.Len(t, got, 1)
	assert.Equal(t, map[string]string{
		"id":                      "a",
		"nama":                    "A",
		"nip":                     "198703122010012004",
		"telp":                    "",
		"tmtPns":                  "",
		"riwayatTmtKgb":           "2020-01-15",
		"riwayatTmtPangkat":       "",
		"jadwalKgbBerikutnya":     "2022-01-15",
		"jadwalPangkatBerikutnya": "",
		"createdAt":               "2024-05-02T08:15:00Z",
	}, got[0])
}

func TestEncodeRecords_EmptyIsArray(t *testing.T) {
	out, err := personnel.EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestEncodeDecode_FiveDigitDerivedYear(t *testing.T) {
	// GIVEN: an anchor whose next milestone lands past year 9999
	rec := personnel.Record{ID: "far", Name: "A", LastSalaryIncrementDate: schedule.MustParseDate("9999-06-01")}
	rec.Refresh()

	// WHEN: the record goes through the persisted document
	data, err := personnel.EncodeRecords([]personnel.Record{rec})
	require.NoError(t, err)
	records, err := personnel.DecodeRecords(data)
	require.NoError(t, err)

	// THEN: the derived date survives and still matches its anchor
	require.Len(t, records, 1)
	assert.Equal(t, "10001-06-01", records[0].NextSalaryIncrementDate.String())
	assert.True(t, records[0].IsConsistent())
}
