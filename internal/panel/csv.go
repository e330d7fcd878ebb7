package panel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// CSV layout: header "time,SYM1,SYM2,...", one row per timestamp, RFC3339
// timestamps in the first column.

// LoadCSV reads a panel from the file at path.
func LoadCSV(path string) (*Panel, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open panel: %w", err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV decodes a panel from CSV data.
func ReadCSV(r io.Reader) (*Panel, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv needs a header and at least one row")
	}

	header := records[0]
	if len(header) < 2 || header[0] != "time" {
		return nil, fmt.Errorf("csv header must start with time followed by symbols")
	}
	symbols := header[1:]

	times := make([]time.Time, 0, len(records)-1)
	columns := make(map[string][]float64, len(symbols))
	for _, sym := range symbols {
		if _, dup := columns[sym]; dup {
			return nil, fmt.Errorf("duplicate symbol column %s", sym)
		}
		columns[sym] = make([]float64, 0, len(records)-1)
	}

	for rowIdx, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", rowIdx+1, len(record), len(header))
		}
		ts, err := time.Parse(time.RFC3339, record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse time: %w", rowIdx+1, err)
		}
		times = append(times, ts)
		for colIdx, sym := range symbols {
			v, err := strconv.ParseFloat(record[colIdx+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", rowIdx+1, sym, err)
			}
			if v <= 0 {
				return nil, fmt.Errorf("row %d column %s: price must be positive, got %v", rowIdx+1, sym, v)
			}
			columns[sym] = append(columns[sym], v)
		}
	}

	return New(times, columns)
}

// WriteCSV encodes the panel in the same layout ReadCSV accepts.
func WriteCSV(w io.Writer, p *Panel) error {
	writer := csv.NewWriter(w)
	header := append([]string{"time"}, p.symbols...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(header))
	for i, ts := range p.times {
		record[0] = ts.Format(time.RFC3339)
		for j, sym := range p.symbols {
			record[j+1] = strconv.FormatFloat(p.columns[sym][i], 'f', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
