package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RecordId is the opaque identifier the model store assigns to a record. The
// store may send it as a JSON string or number.
type RecordId string

func (id *RecordId) UnmarshalJSON(data []byte) error {
	s, err := flexString(data)
	if err != nil {
		return fmt.Errorf("invalid record id: %w", err)
	}
	*id = RecordId(s)
	return nil
}

func (id RecordId) String() string {
	return string(id)
}

// Metric is a fractional score. The store may send it as a JSON number or a
// numeric string. The original text is kept so a malformed value survives a
// round trip and only collapses to NaN when it is read as a number.
type Metric string

// UnmarshalJSON keeps any value that is neither a string nor a number as its
// raw JSON text, which reads back as NaN. One bad metric must not fail the
// whole collection.
func (m *Metric) UnmarshalJSON(data []byte) error {
	s, err := flexString(data)
	if err != nil {
		s = string(bytes.TrimSpace(data))
	}
	*m = Metric(s)
	return nil
}

// Float parses the metric. Unparseable values yield NaN.
func (m Metric) Float() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(m)), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func (m Metric) Valid() bool {
	v := m.Float()
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func flexString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}

type ModelRecord struct {
	Id        RecordId `json:"id" yaml:"id"`
	ModelName string   `json:"model_name" yaml:"model_name"`
	Accuracy  Metric   `json:"accuracy" yaml:"accuracy"`
	Precision Metric   `json:"precision" yaml:"precision"`
	Recall    Metric   `json:"recall" yaml:"recall"`
	F1Score   Metric   `json:"f1_score" yaml:"f1_score"`
}

// Draft returns the record's fields without its id, as sent on update.
func (r ModelRecord) Draft() ModelDraft {
	return ModelDraft{
		ModelName: r.ModelName,
		Accuracy:  r.Accuracy,
		Precision: r.Precision,
		Recall:    r.Recall,
		F1Score:   r.F1Score,
	}
}

type ModelDraft struct {
	ModelName string `json:"model_name"`
	Accuracy  Metric `json:"accuracy"`
	Precision Metric `json:"precision"`
	Recall    Metric `json:"recall"`
	F1Score   Metric `json:"f1_score"`
}

func (d ModelDraft) WithId(id RecordId) ModelRecord {
	return ModelRecord{
		Id:        id,
		ModelName: d.ModelName,
		Accuracy:  d.Accuracy,
		Precision: d.Precision,
		Recall:    d.Recall,
		F1Score:   d.F1Score,
	}
}
