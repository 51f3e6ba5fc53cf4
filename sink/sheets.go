package sink

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Jumpaku/go-screening"
	"github.com/Jumpaku/go-screening/errors"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	mimeTypeGoogleAppSpreadsheet = "application/vnd.google-apps.spreadsheet"

	driveFileFields   = "id,name,mimeType"
	sheetTitlesFields = "sheets.properties.title"
	valueInputOption  = "RAW"
	insertDataOption  = "INSERT_ROWS"
)

// Scopes are the OAuth scopes requested for the service account.
var Scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

// SheetsSink appends records as rows of a Google Sheets spreadsheet.
// It is safe for concurrent use.
type SheetsSink struct {
	sheets        *sheets.Service
	drive         *drive.Service
	spreadsheetID string

	mu        sync.Mutex
	sheetName string
}

var _ Sink = (*SheetsSink)(nil)

// NewSheets creates a SheetsSink for the spreadsheet spreadsheetID.
// If sheetName is empty, rows go to the first sheet of the spreadsheet.
// driveService is only used by Check and may be nil.
func NewSheets(sheetsService *sheets.Service, driveService *drive.Service, spreadsheetID, sheetName string) *SheetsSink {
	return &SheetsSink{
		sheets:        sheetsService,
		drive:         driveService,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// DialSheets authenticates with the service account credential JSON and creates a SheetsSink.
func DialSheets(ctx context.Context, credentialsJSON []byte, spreadsheetID, sheetName string) (*SheetsSink, error) {
	conf, err := google.JWTConfigFromJSON(credentialsJSON, Scopes...)
	if err != nil {
		return nil, errors.NewConfigError("failed to parse service account credential", err)
	}
	client := conf.Client(ctx)

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, errors.NewAPIError("failed to create sheets service", err)
	}
	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, errors.NewAPIError("failed to create drive service", err)
	}
	return NewSheets(sheetsService, driveService, spreadsheetID, sheetName), nil
}

// Check verifies that the spreadsheet exists and is visible to the credential.
func (s *SheetsSink) Check(ctx context.Context) (err error) {
	if s.drive == nil {
		return nil
	}
	f, err := s.drive.Files.Get(s.spreadsheetID).
		SupportsAllDrives(true).
		Fields(driveFileFields).
		Context(ctx).
		Do()
	if err != nil {
		var gErr *googleapi.Error
		if goerrors.As(err, &gErr) && gErr.Code == 404 {
			return fmt.Errorf("spreadsheet '%s' not found: %w", s.spreadsheetID, errors.ErrNotFound)
		}
		return errors.NewAPIError("failed to get spreadsheet file", err)
	}
	if f.MimeType != mimeTypeGoogleAppSpreadsheet {
		return errors.NewConfigError(fmt.Sprintf("file '%s' is %s, not a spreadsheet", f.Name, f.MimeType), nil)
	}
	return nil
}

// Append writes record as a new row after the last row of the sheet.
func (s *SheetsSink) Append(ctx context.Context, record screening.Record) (err error) {
	name, err := s.resolveSheetName(ctx)
	if err != nil {
		return err
	}
	row := record.Row()
	values := make([]interface{}, 0, len(row))
	for _, cell := range row {
		values = append(values, cell)
	}
	_, err = s.sheets.Spreadsheets.Values.Append(s.spreadsheetID, quoteSheetName(name), &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{values},
	}).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		return errors.NewAPIError("failed to append row", err)
	}
	return nil
}

func (s *SheetsSink) resolveSheetName(ctx context.Context) (name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheetName != "" {
		return s.sheetName, nil
	}
	ss, err := s.sheets.Spreadsheets.Get(s.spreadsheetID).
		Fields(sheetTitlesFields).
		Context(ctx).
		Do()
	if err != nil {
		return "", errors.NewAPIError("failed to get spreadsheet", err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet '%s' has no sheets: %w", s.spreadsheetID, errors.ErrNotFound)
	}
	s.sheetName = ss.Sheets[0].Properties.Title
	return s.sheetName, nil
}

func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
