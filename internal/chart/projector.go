package chart

import (
	"metrics-dashboard/pkg/api"
)

// The y axis always spans this window, whatever the data range.
const (
	DomainMin = 0.5
	DomainMax = 1.0
)

type SeriesPoint struct {
	Name      string
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

// Project maps each record to one chart point, in collection order. Metrics
// that do not parse become NaN, the record itself is never dropped.
func Project(collection []api.ModelRecord) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(collection))
	for _, record := range collection {
		points = append(points, SeriesPoint{
			Name:      record.ModelName,
			Accuracy:  record.Accuracy.Float(),
			Precision: record.Precision.Float(),
			Recall:    record.Recall.Float(),
			F1:        record.F1Score.Float(),
		})
	}
	return points
}

type Series struct {
	Name  string
	Value func(SeriesPoint) float64
}

// AllSeries lists the bars drawn for every point, in legend order.
var AllSeries = []Series{
	{Name: "Accuracy", Value: func(p SeriesPoint) float64 { return p.Accuracy }},
	{Name: "Precision", Value: func(p SeriesPoint) float64 { return p.Precision }},
	{Name: "Recall", Value: func(p SeriesPoint) float64 { return p.Recall }},
	{Name: "F1", Value: func(p SeriesPoint) float64 { return p.F1 }},
}
