// Package boqfile reads bills of quantities and historical bid data from
// JSON and XLSX files.
package boqfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/tendercraft/tender-cli/internal/model"
)

// BOQ is one bill of quantities ready for analysis.
type BOQ struct {
	ProjectName string           `json:"project_name"`
	TotalBudget float64          `json:"total_budget"`
	Items       []model.WorkItem `json:"items"`
}

const dateLayout = "2006-01-02"

// ReadBOQ loads a bill of quantities from a .json or .xlsx file. XLSX files
// carry only the item rows; project name and budget come from the caller.
func ReadBOQ(path string) (*BOQ, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return readBOQJSON(path)
	case ".xlsx":
		items, err := readItemsXLSX(path)
		if err != nil {
			return nil, err
		}
		return &BOQ{Items: items}, nil
	default:
		return nil, eris.Errorf("boqfile: unsupported file type %s", filepath.Ext(path))
	}
}

// ReadBids loads historical bid outcomes from a .json or .xlsx file.
func ReadBids(path string) ([]model.HistoricalBid, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return readBidsJSON(path)
	case ".xlsx":
		return readBidsXLSX(path)
	default:
		return nil, eris.Errorf("boqfile: unsupported file type %s", filepath.Ext(path))
	}
}

func readBOQJSON(path string) (*BOQ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boqfile: read %s", path)
	}

	var boq BOQ
	if err := json.Unmarshal(data, &boq); err != nil {
		return nil, eris.Wrapf(err, "boqfile: parse %s", path)
	}
	return &boq, nil
}

func readBidsJSON(path string) ([]model.HistoricalBid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boqfile: read %s", path)
	}

	var bids []model.HistoricalBid
	if err := json.Unmarshal(data, &bids); err != nil {
		return nil, eris.Wrapf(err, "boqfile: parse %s", path)
	}
	return bids, nil
}

// readItemsXLSX expects columns no, description, unit, quantity with one
// header row. Blank rows are skipped.
func readItemsXLSX(path string) ([]model.WorkItem, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	var items []model.WorkItem
	for i, row := range rows {
		if len(row) < 4 || blank(row) {
			continue
		}

		qty, err := parseFloat(row[3])
		if err != nil {
			return nil, eris.Wrapf(err, "boqfile: row %d quantity", i+2)
		}

		no, _ := strconv.Atoi(strings.TrimSpace(row[0]))
		if no == 0 {
			no = len(items) + 1
		}

		items = append(items, model.WorkItem{
			No:          no,
			Description: strings.TrimSpace(row[1]),
			Unit:        strings.TrimSpace(row[2]),
			Quantity:    qty,
		})
	}
	return items, nil
}

// readBidsXLSX expects columns category, budget, our bid, winning bid, won,
// tender date with one header row.
func readBidsXLSX(path string) ([]model.HistoricalBid, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}

	var bids []model.HistoricalBid
	for i, row := range rows {
		if len(row) < 5 || blank(row) {
			continue
		}

		budget, err := parseFloat(row[1])
		if err != nil {
			return nil, eris.Wrapf(err, "boqfile: row %d budget", i+2)
		}
		ourBid, err := parseFloat(row[2])
		if err != nil {
			return nil, eris.Wrapf(err, "boqfile: row %d our bid", i+2)
		}
		winningBid, err := parseFloat(row[3])
		if err != nil {
			return nil, eris.Wrapf(err, "boqfile: row %d winning bid", i+2)
		}

		bid := model.HistoricalBid{
			Category:   strings.TrimSpace(row[0]),
			Budget:     budget,
			OurBid:     ourBid,
			WinningBid: winningBid,
			Won:        parseBool(row[4]),
		}
		if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
			d, err := time.Parse(dateLayout, strings.TrimSpace(row[5]))
			if err != nil {
				return nil, eris.Wrapf(err, "boqfile: row %d tender date", i+2)
			}
			bid.TenderDate = d
		}
		bids = append(bids, bid)
	}
	return bids, nil
}

func readRows(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boqfile: open %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("boqfile: %s has no sheets", path)
	}

	var rows [][]string
	for i, row := range f.Sheets[0].Rows {
		if i == 0 {
			continue // header
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "won", "1":
		return true
	default:
		return false
	}
}
