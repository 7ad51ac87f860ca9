package spreadsheet

import (
	"fmt"
	"io"
	"math"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/platform/logging"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Column headers of the planning workbook.
const (
	colBranchID   = "FILIAALNR"
	colChain      = "FORMULE"
	colStreet     = "ADRES"
	colPostalCode = "POSTCODE"
	colCity       = "PLAATSNAAM"
	colDriver     = "MERCHANDISER"
	colVisitDay   = "BEZOEKDAG"
	colGripperBox = "GRIPPERBOX"
)

// headerScanRows bounds the search for the header row. The planning layout
// places it on row 9.
const headerScanRows = 30

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Reader implements ports.AddressSource for .xlsx planning workbooks.
type Reader struct {
	logger *zap.Logger
}

func NewReader(logger *zap.Logger) *Reader {
	return &Reader{logger: logging.OrNop(logger)}
}

// Parse reads the planning sheet and returns one record per row that has both
// an address and a driver. Records are not deduplicated.
func (x *Reader) Parse(r io.Reader) (*domain.Ingestion, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewInvalidInputError("Kon het Excel bestand niet lezen.", fmt.Errorf("parse workbook: %w", err))
	}
	defer f.Close()

	sheet := pickSheet(f.GetSheetList())
	if sheet == "" {
		return nil, domain.NewInvalidInputError("Geen tabblad gevonden in het bestand.", nil)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.NewInvalidInputError("Kon het Excel bestand niet lezen.", fmt.Errorf("parse workbook: read sheet %q: %w", sheet, err))
	}

	headerIdx, cols := findHeader(rows)
	if headerIdx < 0 {
		return nil, domain.NewInvalidInputError(
			"Kolommen ADRES en Merchandiser niet gevonden in het bestand.",
			fmt.Errorf("parse workbook: no header row in sheet %q", sheet),
		)
	}

	x.logger.Debug("parsing planning sheet",
		zap.String("sheet", sheet),
		zap.Int("header_row", headerIdx+1),
		zap.Int("rows", len(rows)-headerIdx-1),
	)

	drivers := map[string]struct{}{}
	var out []domain.AddressRecord
	skipped := 0

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		street := cell(row, cols, colStreet)
		driver := cell(row, cols, colDriver)
		if street == "" || driver == "" {
			skipped++
			continue
		}

		city := cell(row, cols, colCity)
		drivers[driver] = struct{}{}

		out = append(out, domain.AddressRecord{
			BranchID:       cell(row, cols, colBranchID),
			Chain:          cell(row, cols, colChain),
			Street:         street,
			PostalCode:     cell(row, cols, colPostalCode),
			City:           city,
			FullAddress:    fmt.Sprintf("%s, %s, Nederland", street, city),
			Driver:         driver,
			PlacementCount: countPlacements(row, cols),
			VisitDay:       visitDay(cell(row, cols, colVisitDay)),
		})
	}

	if skipped > 0 {
		x.logger.Debug("skipped rows without address or driver", zap.Int("count", skipped))
	}

	if len(out) == 0 {
		return nil, domain.NewNoValidAddressesError("Geen geldige adressen gevonden in het bestand.")
	}

	names := make([]string, 0, len(drivers))
	for d := range drivers {
		names = append(names, d)
	}
	sort.Strings(names)

	return &domain.Ingestion{Addresses: out, Drivers: names}, nil
}

func pickSheet(names []string) string {
	for _, n := range names {
		if strings.Contains(strings.ToUpper(n), "PLANNING") {
			return n
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return ""
}

// findHeader returns the index of the first row naming both the address and
// driver columns, plus a column index by upper-cased header.
func findHeader(rows [][]string) (int, map[string]int) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}
	for i := 0; i < limit; i++ {
		cols := map[string]int{}
		for j, h := range rows[i] {
			key := strings.ToUpper(strings.TrimSpace(h))
			if key == "" {
				continue
			}
			if _, dup := cols[key]; !dup {
				cols[key] = j
			}
		}
		_, hasStreet := cols[colStreet]
		_, hasDriver := cols[colDriver]
		if hasStreet && hasDriver {
			return i, cols
		}
	}
	return -1, nil
}

func cell(row []string, cols map[string]int, name string) string {
	j, ok := cols[name]
	if !ok || j >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[j])
}

// countPlacements counts cells right of the GRIPPERBOX column that read "JA".
func countPlacements(row []string, cols map[string]int) int {
	g, ok := cols[colGripperBox]
	if !ok {
		return 0
	}
	n := 0
	for j := g + 1; j < len(row); j++ {
		if strings.EqualFold(strings.TrimSpace(row[j]), "JA") {
			n++
		}
	}
	return n
}

// visitDay keeps Dutch day names, converts Excel date serials to the Dutch
// weekday and passes anything else through trimmed.
func visitDay(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || domain.IsDutchDayName(raw) {
		return raw
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(serial) || math.IsInf(serial, 0) {
		return raw
	}
	date := excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	return domain.DutchWeekday(date.Weekday())
}
