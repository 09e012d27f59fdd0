// Package roster parses guest and user spreadsheets uploaded by admins.
// It accepts xlsx and csv files, normalizes header names and resolves the
// common column synonyms event organizers tend to use.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// GuestRow is one parsed guest entry from an uploaded roster.
type GuestRow struct {
	Name         string
	Title        string
	Description  string
	Organization string
	Email        string
	PhotoName    string
	IsSpeaker    bool
	IsModerator  bool
}

// UserRow is one parsed account entry from a bulk user import sheet.
type UserRow struct {
	Username string
	Email    string
	Name     string
	Password string
	Role     string
}

// Canonical column names after synonym resolution.
const (
	colName         = "name"
	colTitle        = "title"
	colDescription  = "description"
	colOrganization = "organization"
	colEmail        = "email"
	colPhoto        = "photo"
	colIsSpeaker    = "is_speaker"
	colIsModerator  = "is_moderator"
	colUsername     = "username"
	colPassword     = "password"
	colRole         = "role"
)

// guestSynonyms maps the header variants seen in real rosters to the
// canonical column name.
var guestSynonyms = map[string]string{
	"name":          colName,
	"full_name":     colName,
	"guest_name":    colName,
	"title":         colTitle,
	"designation":   colTitle,
	"position":      colTitle,
	"job_title":     colTitle,
	"description":   colDescription,
	"bio":           colDescription,
	"about":         colDescription,
	"organization":  colOrganization,
	"organisation":  colOrganization,
	"company":       colOrganization,
	"affiliation":   colOrganization,
	"email":         colEmail,
	"email_address": colEmail,
	"photo":         colPhoto,
	"photo_name":    colPhoto,
	"image":         colPhoto,
	"image_name":    colPhoto,
	"picture":       colPhoto,
	"is_speaker":    colIsSpeaker,
	"speaker":       colIsSpeaker,
	"is_moderator":  colIsModerator,
	"moderator":     colIsModerator,
}

var userSynonyms = map[string]string{
	"username":  colUsername,
	"user_name": colUsername,
	"login":     colUsername,
	"email":     colEmail,
	"name":      colName,
	"full_name": colName,
	"password":  colPassword,
	"role":      colRole,
}

// SupportedRosterFile reports whether the filename has an extension the
// parser understands.
func SupportedRosterFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".csv":
		return true
	}
	return false
}

// ParseGuests reads a guest roster. The file format is chosen from the
// filename extension.
func ParseGuests(r io.Reader, filename string) ([]GuestRow, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, err
	}
	return guestsFromRows(rows)
}

// ParseUsers reads a bulk user import sheet.
func ParseUsers(r io.Reader, filename string) ([]UserRow, error) {
	rows, err := readRows(r, filename)
	if err != nil {
		return nil, err
	}
	return usersFromRows(rows)
}

func readRows(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXlsx(r)
	case ".csv":
		return readCsv(r)
	default:
		return nil, fmt.Errorf("unsupported roster format %q, expected .xlsx or .csv", filepath.Ext(filename))
	}
}

func readXlsx(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	return rows, nil
}

func readCsv(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

// normalizeHeader lowercases a header cell and collapses separators so
// "Image Name", "image-name" and "IMAGE_NAME" all resolve the same way.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// headerIndex resolves each header cell through the synonym table and
// returns canonical-name to column-index.
func headerIndex(header []string, synonyms map[string]string) map[string]int {
	index := make(map[string]int)
	for i, cell := range header {
		canonical, ok := synonyms[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, seen := index[canonical]; !seen {
			index[canonical] = i
		}
	}
	return index
}

func cellAt(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "x":
		return true
	}
	return false
}

func guestsFromRows(rows [][]string) ([]GuestRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster is empty")
	}

	idx := headerIndex(rows[0], guestSynonyms)
	if _, ok := idx[colName]; !ok {
		return nil, fmt.Errorf("roster is missing a name column")
	}

	guests := make([]GuestRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cellAt(row, idx, colName)
		if name == "" {
			continue
		}
		guests = append(guests, GuestRow{
			Name:         name,
			Title:        cellAt(row, idx, colTitle),
			Description:  cellAt(row, idx, colDescription),
			Organization: cellAt(row, idx, colOrganization),
			Email:        cellAt(row, idx, colEmail),
			PhotoName:    cellAt(row, idx, colPhoto),
			IsSpeaker:    truthy(cellAt(row, idx, colIsSpeaker)),
			IsModerator:  truthy(cellAt(row, idx, colIsModerator)),
		})
	}
	return guests, nil
}

func usersFromRows(rows [][]string) ([]UserRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("import sheet is empty")
	}

	idx := headerIndex(rows[0], userSynonyms)
	if _, ok := idx[colEmail]; !ok {
		return nil, fmt.Errorf("import sheet is missing an email column")
	}

	users := make([]UserRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		email := cellAt(row, idx, colEmail)
		name := cellAt(row, idx, colName)
		if email == "" && name == "" {
			continue
		}
		users = append(users, UserRow{
			Username: cellAt(row, idx, colUsername),
			Email:    email,
			Name:     name,
			Password: cellAt(row, idx, colPassword),
			Role:     strings.ToLower(cellAt(row, idx, colRole)),
		})
	}
	return users, nil
}

// PhotoKey normalizes a photo reference so roster cells can be matched
// against uploaded filenames regardless of case or extension.
func PhotoKey(name string) string {
	name = strings.TrimSpace(strings.ToLower(filepath.Base(name)))
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}
