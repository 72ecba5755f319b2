package model

// Severity of a notice.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Notice is a transient, fire-and-forget notification for one user.
type Notice struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// DataPoint is one bar/slice of a chart.
type DataPoint struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ChartSeries is the payload handed to the browser charting library.
type ChartSeries struct {
	DataPoints   []DataPoint `json:"dataPoints"`
	SeriesKeys   []string    `json:"seriesKeys"`
	ColorPalette []string    `json:"colorPalette"`
}
