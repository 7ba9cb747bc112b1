package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// Header is the first row of every CSV report.
var Header = []string{"File", "Line", "Offset", "Context"}

// WriteCSV writes rows in delimited form with a leading header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{r.Document, strconv.Itoa(r.Line), strconv.Itoa(r.Offset), r.Context}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes rows to a CSV file at path, creating or truncating
// it.
func WriteCSVFile(path string, rows []Row) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteCSV(f, rows)
}
