/*
codec.go - Persisted and exported JSON document

PURPOSE:
  The key-value slot, the export download and the import upload all carry
  the same document: a JSON array of records with derived dates included.
  Keys follow the browser application's storage format so that its exports
  import unchanged.

DOCUMENT SHAPE:
  [
    {
      "id": "2b0c...",
      "nama": "Siti Aminah",
      "nip": "198703122010012004",
      "telp": "0812...",
      "tmtPns": "2010-01-01",
      "riwayatTmtKgb": "2023-04-01",
      "riwayatTmtPangkat": "2021-10-01",
      "jadwalKgbBerikutnya": "2025-04-01",
      "jadwalPangkatBerikutnya": "2025-10-01",
      "createdAt": "2024-05-02T08:15:00Z"
    }
  ]

  Absent dates are "". Unparseable date text decodes as absent. Anything
  other than an array of objects with string fields is an ImportFormatError.
*/
package personnel

import (
	"bytes"
	"time"

	json "github.com/goccy/go-json"
	"github.com/warp/asn-monitor/schedule"
)

type recordJSON struct {
	ID                      string        `json:"id"`
	Name                    string        `json:"nama"`
	EmployeeNumber          string        `json:"nip"`
	Phone                   string        `json:"telp"`
	CivilServiceStartDate   schedule.Date `json:"tmtPns"`
	LastSalaryIncrementDate schedule.Date `json:"riwayatTmtKgb"`
	LastRankPromotionDate   schedule.Date `json:"riwayatTmtPangkat"`
	NextSalaryIncrementDate schedule.Date `json:"jadwalKgbBerikutnya"`
	NextRankPromotionDate   schedule.Date `json:"jadwalPangkatBerikutnya"`
	CreatedAt               string        `json:"createdAt"`
}

func toJSON(r Record) recordJSON {
	var createdAt string
	if !r.CreatedAt.IsZero() {
		createdAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return recordJSON{
		ID:                      r.ID,
		Name:                    r.Name,
		EmployeeNumber:          r.EmployeeNumber,
		Phone:                   r.Phone,
		CivilServiceStartDate:   r.CivilServiceStartDate,
		LastSalaryIncrementDate: r.LastSalaryIncrementDate,
		LastRankPromotionDate:   r.LastRankPromotionDate,
		NextSalaryIncrementDate: r.NextSalaryIncrementDate,
		NextRankPromotionDate:   r.NextRankPromotionDate,
		CreatedAt:               createdAt,
	}
}

func (j recordJSON) toRecord() Record {
	createdAt, _ := time.Parse(time.RFC3339, j.CreatedAt)
	return Record{
		ID:                      j.ID,
		Name:                    j.Name,
		EmployeeNumber:          j.EmployeeNumber,
		Phone:                   j.Phone,
		CivilServiceStartDate:   j.CivilServiceStartDate,
		LastSalaryIncrementDate: j.LastSalaryIncrementDate,
		LastRankPromotionDate:   j.LastRankPromotionDate,
		NextSalaryIncrementDate: j.NextSalaryIncrementDate,
		NextRankPromotionDate:   j.NextRankPromotionDate,
		CreatedAt:               createdAt,
	}
}

// EncodeRecords serializes records as a compact JSON array.
func EncodeRecords(records []Record) ([]byte, error) {
	return json.Marshal(toJSONSlice(records))
}

// EncodeRecordsIndent serializes records as an indented JSON array, the
// form used for export downloads.
func EncodeRecordsIndent(records []Record) ([]byte, error) {
	return json.MarshalIndent(toJSONSlice(records), "", "  ")
}

func toJSONSlice(records []Record) []recordJSON {
	out := make([]recordJSON, len(records))
	for i, r := range records {
		out[i] = toJSON(r)
	}
	return out
}

// DecodeRecords parses a record document. The top-level value must be an
// array and every element an object; otherwise an *ImportFormatError is
// returned. Derived dates are taken as given.
func DecodeRecords(data []byte) ([]Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &ImportFormatError{Index: -1, Reason: "empty document"}
	}
	if data[0] != '[' {
		return nil, &ImportFormatError{Index: -1, Reason: "top-level value must be an array"}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, &ImportFormatError{Index: -1, Reason: "malformed JSON: " + err.Error()}
	}

	records := make([]Record, 0, len(elems))
	for i, raw := range elems {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			return nil, &ImportFormatError{Index: i, Reason: "must be an object"}
		}
		var rj recordJSON
		if err := json.Unmarshal(raw, &rj); err != nil {
			return nil, &ImportFormatError{Index: i, Reason: err.Error()}
		}
		records = append(records, rj.toRecord())
	}
	return records, nil
}
