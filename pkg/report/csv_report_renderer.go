package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderReport(report Report) (string, error)
}

type CsvReportRendererImpl struct {
}

func NewCsvReportRenderer() *CsvReportRendererImpl {
	return &CsvReportRendererImpl{}
}

// RenderReport writes the column header followed by one CSV line per row, in
// column order. Missing and nil cells render as empty fields.
func (t *CsvReportRendererImpl) RenderReport(report Report) (string, error) {
	data := make([][]string, 0, len(report.Rows)+1)
	data = append(data, report.Columns)
	for _, row := range report.Rows {
		record := make([]string, 0, len(report.Columns))
		for _, column := range report.Columns {
			record = append(record, formatCell(row[column]))
		}
		data = append(data, record)
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, record := range data {
		if err := writer.Write(record); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
