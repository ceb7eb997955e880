package service

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"clinic-room-allocation/internal/models"
)

const maxImportRows = 5000

var (
	ErrImportNoData      = errors.New("spreadsheet has no data rows (first row is the header)")
	ErrImportTooManyRows = fmt.Errorf("spreadsheet exceeds %d data rows", maxImportRows)
)

// RowError describes one spreadsheet row that was skipped
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport is the outcome of a bulk import
type ImportReport struct {
	Total   int        `json:"total"`
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Skipped []RowError `json:"skipped"`
}

// sheet is the first worksheet of an uploaded workbook, header split off
type sheet struct {
	columns map[string]int
	rows    [][]string
}

// readSheet loads the first worksheet and maps header cells onto the
// canonical column names in aliases. Missing columns map to -1.
func readSheet(r io.Reader, aliases map[string][]string) (*sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse spreadsheet: %v", ErrInvalidInput, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read worksheet: %v", ErrInvalidInput, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, ErrImportNoData)
	}
	if len(rows)-1 > maxImportRows {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, ErrImportTooManyRows)
	}

	return &sheet{columns: parseHeaderIndex(rows[0], aliases), rows: rows[1:]}, nil
}

func parseHeaderIndex(header []string, aliases map[string][]string) map[string]int {
	idx := make(map[string]int, len(aliases))
	for name := range aliases {
		idx[name] = -1
	}
	for i, h := range header {
		lower := strings.ToLower(strings.TrimSpace(h))
		for name, names := range aliases {
			for _, alias := range names {
				if lower == alias && idx[name] < 0 {
					idx[name] = i
				}
			}
		}
	}
	return idx
}

// requireColumns reports the first required column the header lacks
func (s *sheet) requireColumns(names ...string) error {
	for _, name := range names {
		if s.columns[name] < 0 {
			return fmt.Errorf("%w: spreadsheet header is missing column %q", ErrInvalidInput, name)
		}
	}
	return nil
}

// cell returns the trimmed value of a named column, empty when absent
func (s *sheet) cell(row []string, name string) string {
	i := s.columns[name]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var roomColumns = map[string][]string{
	"name":        {"name", "room", "sala", "nome"},
	"block":       {"block", "bloco"},
	"floor":       {"floor", "andar"},
	"specialty":   {"specialty", "preferred_specialty", "especialidade", "especialidade_preferencial"},
	"maintenance": {"maintenance", "is_maintenance", "manutencao", "manutenção"},
}

var demandColumns = map[string][]string{
	"professional":  {"professional", "professional_name", "profissional", "medico", "médico", "nome"},
	"specialty":     {"specialty", "especialidade"},
	"weekday":       {"weekday", "day", "dia", "dia_semana"},
	"shift":         {"shift", "turno"},
	"resource_type": {"resource_type", "resource", "tipo", "tipo_recurso"},
}

var weekdayAliases = map[string]string{
	"SEG": models.Monday,
	"TER": models.Tuesday,
	"QUA": models.Wednesday,
	"QUI": models.Thursday,
	"SEX": models.Friday,
	"SAB": models.Saturday,
	"SÁB": models.Saturday,
	"DOM": models.Sunday,
}

var shiftAliases = map[string]string{
	"MANHA": models.ShiftMorning,
	"MANHÃ": models.ShiftMorning,
	"TARDE": models.ShiftAfternoon,
	"NOITE": models.ShiftNight,
	"AM":    models.ShiftMorning,
	"PM":    models.ShiftAfternoon,
}

// NormalizeWeekday maps "monday", "Mon", "seg" and similar onto a weekday label
func NormalizeWeekday(raw string) string {
	r := []rune(strings.ToUpper(strings.TrimSpace(raw)))
	if len(r) > 3 {
		r = r[:3]
	}
	day := string(r)
	if alias, ok := weekdayAliases[day]; ok {
		return alias
	}
	return day
}

// NormalizeShift maps shift spellings onto a shift label
func NormalizeShift(raw string) string {
	shift := strings.ToUpper(strings.TrimSpace(raw))
	if alias, ok := shiftAliases[shift]; ok {
		return alias
	}
	return shift
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "x", "sim", "s":
		return true
	}
	return false
}
