package recency

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Export serializes a classification result for download. Supported formats
// are "json" and "csv".
func Export(result Result, format string, now time.Time) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(struct {
			Timestamp string `json:"timestamp"`
			Total     int    `json:"total"`
			Result
		}{
			Timestamp: now.Format(time.RFC3339),
			Total:     result.Count,
			Result:    result,
		}, "", "  ")
	case "csv":
		return exportCSV(result)
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportCSV(result Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"ID", "Name", "Category", "Price", "Launch Date", "Days Since Launch"}); err != nil {
		return nil, err
	}
	for i := range result.Recent {
		p := &result.Recent[i]
		record := []string{
			p.ID,
			p.Name,
			p.Category,
			strconv.FormatInt(p.Pricing.FinalPrice, 10),
			p.Launch.LaunchDate,
			strconv.Itoa(p.Launch.DaysSinceLaunch),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
