package main

import (
	"context"
	"fmt"
	"regexp"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"player-timeline/roster"
)

// SheetsClient writes a ranked roster into one tab of a Google Sheet.
type SheetsClient struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsClient creates a client from service account credentials.
func NewSheetsClient(ctx context.Context, credentialsJSON []byte, sheetURL, sheetName string) (*SheetsClient, error) {
	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, err
	}

	return &SheetsClient{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// extractSpreadsheetID pulls {id} out of .../spreadsheets/d/{id}/...
func extractSpreadsheetID(url string) (string, error) {
	matches := spreadsheetIDPattern.FindStringSubmatch(url)
	if len(matches) < 2 {
		return "", fmt.Errorf("could not extract spreadsheet ID from URL: %s", url)
	}
	return matches[1], nil
}

func sheetCell(n roster.Number) interface{} {
	if !n.Valid {
		return ""
	}
	return n.Value
}

// rosterRows lays out one header row and one row per player, in rank order.
func rosterRows(players []*roster.Player, key roster.SortKey) [][]interface{} {
	rows := [][]interface{}{{
		"Rank", "Player", "First Year", "Birth Year", "Debut Year", "Records", "First Tier Start", "Sorted By",
	}}
	for i, p := range players {
		rows = append(rows, []interface{}{
			i + 1, p.Name,
			sheetCell(p.FirstYear), sheetCell(p.BirthYear), sheetCell(p.DebutYear),
			len(p.Records), p.StartsInFirstTier(), key.Key(),
		})
	}
	return rows
}

// UploadRoster replaces the tab's contents with the ranked roster.
func (c *SheetsClient) UploadRoster(ctx context.Context, players []*roster.Player, key roster.SortKey) error {
	clearRange := fmt.Sprintf("%s!A:Z", c.sheetName)
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	valueRange := &sheets.ValueRange{Values: rosterRows(players, key)}

	_, err = c.service.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write to sheet: %w", err)
	}
	return nil
}
