package form

import (
	"errors"
	"fmt"
	"log/slog"
	"metrics-dashboard/pkg/api"
	"net/url"
	"sort"
	"strings"

	"github.com/gorilla/schema"
	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidForm = errors.New("invalid model form")

const (
	FieldModelName = "model_name"
	FieldAccuracy  = "accuracy"
	FieldPrecision = "precision"
	FieldRecall    = "recall"
	FieldF1Score   = "f1_score"
)

// Fields lists the form inputs in display order.
var Fields = []string{FieldModelName, FieldAccuracy, FieldPrecision, FieldRecall, FieldF1Score}

const draftSchema = `{
	"type": "object",
	"required": ["model_name", "accuracy", "precision", "recall", "f1_score"],
	"properties": {
		"model_name": {"type": "string", "pattern": "\\S"},
		"accuracy":   {"$ref": "#/definitions/score"},
		"precision":  {"$ref": "#/definitions/score"},
		"recall":     {"$ref": "#/definitions/score"},
		"f1_score":   {"$ref": "#/definitions/score"}
	},
	"definitions": {
		"score": {"type": "string", "pattern": "^\\s*[-+]?([0-9]+(\\.[0-9]*)?|\\.[0-9]+)([eE][-+]?[0-9]+)?\\s*$"}
	}
}`

var (
	decoder      = newDecoder()
	schemaLoader = gojsonschema.NewStringLoader(draftSchema)
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

type values struct {
	ModelName string `schema:"model_name" json:"model_name"`
	Accuracy  string `schema:"accuracy" json:"accuracy"`
	Precision string `schema:"precision" json:"precision"`
	Recall    string `schema:"recall" json:"recall"`
	F1Score   string `schema:"f1_score" json:"f1_score"`
}

// ValidationError lists the problems found per field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", ErrInvalidForm, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidForm
}

// ModelForm is the create/edit form for a model record. Editing resubmits
// the whole record.
type ModelForm struct {
	editing *api.ModelRecord
}

// New opens the form. A nil record opens it for a new model, otherwise it is
// prefilled with the record for editing.
func New(record *api.ModelRecord) *ModelForm {
	if record == nil {
		return &ModelForm{}
	}
	r := *record
	return &ModelForm{editing: &r}
}

func (f *ModelForm) Editing() (api.ModelRecord, bool) {
	if f.editing == nil {
		return api.ModelRecord{}, false
	}
	return *f.editing, true
}

func (f *ModelForm) Title() string {
	if f.editing != nil {
		return "Edit Model"
	}
	return "Add New Model"
}

// Values returns the initial field values, empty when creating.
func (f *ModelForm) Values() url.Values {
	v := url.Values{}
	if f.editing == nil {
		for _, field := range Fields {
			v.Set(field, "")
		}
		return v
	}
	v.Set(FieldModelName, f.editing.ModelName)
	v.Set(FieldAccuracy, string(f.editing.Accuracy))
	v.Set(FieldPrecision, string(f.editing.Precision))
	v.Set(FieldRecall, string(f.editing.Recall))
	v.Set(FieldF1Score, string(f.editing.F1Score))
	return v
}

// Decode turns submitted values into a draft. Fields missing from submitted
// keep their initial value, so an edit can change a single field.
func (f *ModelForm) Decode(submitted url.Values) (api.ModelDraft, error) {
	merged := f.Values()
	for k, v := range submitted {
		merged[k] = v
	}

	var in values
	if err := decoder.Decode(&in, merged); err != nil {
		slog.Error("error decoding model form", "error", err)
		return api.ModelDraft{}, fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	if err := validate(in); err != nil {
		return api.ModelDraft{}, err
	}

	return api.ModelDraft{
		ModelName: strings.TrimSpace(in.ModelName),
		Accuracy:  api.Metric(strings.TrimSpace(in.Accuracy)),
		Precision: api.Metric(strings.TrimSpace(in.Precision)),
		Recall:    api.Metric(strings.TrimSpace(in.Recall)),
		F1Score:   api.Metric(strings.TrimSpace(in.F1Score)),
	}, nil
}

func validate(in values) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(in))
	if err != nil {
		return fmt.Errorf("error validating model form: %w", err)
	}

	invalid := map[string]string{}
	for _, e := range result.Errors() {
		field := e.Field()
		if field == FieldModelName {
			invalid[field] = "is required"
		} else {
			invalid[field] = "must be a number"
		}
	}

	// the pattern accepts numerals that overflow float64
	metrics := map[string]string{FieldAccuracy: in.Accuracy, FieldPrecision: in.Precision, FieldRecall: in.Recall, FieldF1Score: in.F1Score}
	for field, v := range metrics {
		if _, ok := invalid[field]; !ok && !api.Metric(v).Valid() {
			invalid[field] = "must be a finite number"
		}
	}

	if len(invalid) > 0 {
		return &ValidationError{Fields: invalid}
	}
	return nil
}
