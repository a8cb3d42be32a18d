package form_test

import (
	"metrics-dashboard/internal/form"
	"metrics-dashboard/pkg/api"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateForm(t *testing.T) {
	f := form.New(nil)
	assert.Equal(t, "Add New Model", f.Title())
	_, editing := f.Editing()
	assert.False(t, editing)

	draft, err := f.Decode(url.Values{
		"model_name": {" RF "},
		"accuracy":   {"0.95"},
		"precision":  {"0.92"},
		"recall":     {"0.93"},
		"f1_score":   {"0.925"},
		"unknown":    {"ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, api.ModelDraft{ModelName: "RF", Accuracy: "0.95", Precision: "0.92", Recall: "0.93", F1Score: "0.925"}, draft)
}

func TestEditFormPrefill(t *testing.T) {
	record := api.ModelRecord{Id: "1", ModelName: "RF", Accuracy: "0.95", Precision: "0.92", Recall: "0.93", F1Score: "0.925"}
	f := form.New(&record)
	assert.Equal(t, "Edit Model", f.Title())

	values := f.Values()
	assert.Equal(t, "RF", values.Get(form.FieldModelName))
	assert.Equal(t, "0.925", values.Get(form.FieldF1Score))

	draft, err := f.Decode(url.Values{"accuracy": {"0.97"}})
	require.NoError(t, err)
	assert.Equal(t, api.ModelDraft{ModelName: "RF", Accuracy: "0.97", Precision: "0.92", Recall: "0.93", F1Score: "0.925"}, draft)

	edited, ok := f.Editing()
	require.True(t, ok)
	assert.Equal(t, record, edited)
}

func TestFormValidation(t *testing.T) {
	f := form.New(nil)

	_, err := f.Decode(url.Values{
		"model_name": {"   "},
		"accuracy":   {"high"},
		"precision":  {"0.9"},
		"recall":     {"1e999"},
		"f1_score":   {""},
	})
	require.ErrorIs(t, err, form.ErrInvalidForm)

	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"model_name": "is required",
		"accuracy":   "must be a number",
		"recall":     "must be a finite number",
		"f1_score":   "must be a number",
	}, verr.Fields)
}

func TestFormAcceptsOutOfRangeScores(t *testing.T) {
	draft, err := form.New(nil).Decode(url.Values{
		"model_name": {"Odd"},
		"accuracy":   {"1.2"},
		"precision":  {"-0.1"},
		"recall":     {"0"},
		"f1_score":   {"1"},
	})
	require.NoError(t, err)
	assert.Equal(t, api.Metric("1.2"), draft.Accuracy)
}
