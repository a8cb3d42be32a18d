package api

import (
	"metrics-dashboard/internal/database"
	"metrics-dashboard/pkg/api"
)

func convertRecord(r database.ModelRecord) api.ModelRecord {
	return api.ModelRecord{
		Id:        api.RecordId(r.Id.String()),
		ModelName: r.ModelName,
		Accuracy:  api.Metric(r.Accuracy),
		Precision: api.Metric(r.Precision),
		Recall:    api.Metric(r.Recall),
		F1Score:   api.Metric(r.F1Score),
	}
}

func convertRecords(rs []database.ModelRecord) []api.ModelRecord {
	out := make([]api.ModelRecord, 0, len(rs))
	for _, r := range rs {
		out = append(out, convertRecord(r))
	}
	return out
}

func draftToRecord(d api.ModelDraft) database.ModelRecord {
	return database.ModelRecord{
		ModelName: d.ModelName,
		Accuracy:  string(d.Accuracy),
		Precision: string(d.Precision),
		Recall:    string(d.Recall),
		F1Score:   string(d.F1Score),
	}
}
