package sheets

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/techbudget/techbudget/internal/config"
	"github.com/techbudget/techbudget/internal/rest"
	"github.com/techbudget/techbudget/pkg/report"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

type Exporter interface {
	Export(ctx context.Context, spreadsheetId string, title string, rep report.Report) error
}

// GoogleSheetsExporter writes a rendered report into a sheet of an existing
// spreadsheet, authenticated with a service account credentials file.
type GoogleSheetsExporter struct {
	credentialsFile string
}

func NewGoogleSheetsExporter(cfg config.Google) *GoogleSheetsExporter {
	return &GoogleSheetsExporter{credentialsFile: cfg.CredentialsFile}
}

func (e *GoogleSheetsExporter) Export(ctx context.Context, spreadsheetId string, title string, rep report.Report) error {
	if e.credentialsFile == "" {
		return rest.NewValidationError("Google Sheets export is not configured")
	}

	service, err := e.newService(ctx)
	if err != nil {
		return err
	}

	// Adding a sheet that already exists fails; in that case the values
	// update below overwrites the existing one.
	addSheet := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := service.Spreadsheets.BatchUpdate(spreadsheetId, addSheet).Context(ctx).Do(); err != nil {
		log.Debugf("could not add sheet %q, assuming it exists: %v", title, err)
	}

	valueRange := &gsheets.ValueRange{Values: reportValues(rep)}
	_, err = service.Spreadsheets.Values.
		Update(spreadsheetId, fmt.Sprintf("%s!A1", title), valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		err := fmt.Errorf("could not write report to spreadsheet: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (e *GoogleSheetsExporter) newService(ctx context.Context) (*gsheets.Service, error) {
	credentialsJSON, err := os.ReadFile(e.credentialsFile)
	if err != nil {
		err := fmt.Errorf("could not read Google credentials file: %w", err)
		log.Error(err)
		return nil, err
	}
	credentials, err := google.CredentialsFromJSON(ctx, credentialsJSON, gsheets.SpreadsheetsScope)
	if err != nil {
		err := fmt.Errorf("could not parse Google credentials: %w", err)
		log.Error(err)
		return nil, err
	}
	service, err := gsheets.NewService(ctx, option.WithTokenSource(credentials.TokenSource))
	if err != nil {
		err := fmt.Errorf("could not create sheets service: %w", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

// reportValues lays the report out as a header row followed by the rows in
// column order, the same shape the CSV renderer produces.
func reportValues(rep report.Report) [][]interface{} {
	values := make([][]interface{}, 0, len(rep.Rows)+1)

	header := make([]interface{}, 0, len(rep.Columns))
	for _, column := range rep.Columns {
		header = append(header, column)
	}
	values = append(values, header)

	for _, row := range rep.Rows {
		record := make([]interface{}, 0, len(rep.Columns))
		for _, column := range rep.Columns {
			value := row[column]
			if value == nil {
				value = ""
			}
			record = append(record, value)
		}
		values = append(values, record)
	}
	return values
}
