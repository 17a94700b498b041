package cartera

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
)

// ExportHeader is the header of the exported table.
var ExportHeader = []string{"Ticker", "Nombre", "Tipo", "Cantidad", "PPC", "Moneda", "Fecha de compra"}

// ExportRows projects rows into a table for export, sorted by purchase date.
//
// The cost reported is the stored one, in its own currency, whatever the
// display currency of the evaluation: a merged row reports its pooled average
// cost.
func ExportRows(rows []Row) [][]string {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	table := make([][]string, 0, len(sorted))
	for _, r := range sorted {
		table = append(table, []string{
			r.Ticker(),
			r.Name,
			r.Type().String(),
			r.Quantity.String(),
			r.Cost.value.Round(8).String(),
			string(r.Cost.cur),
			r.Date.String(),
		})
	}
	return table
}

// WriteCSV writes the header and the exported rows as CSV.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	if err := cw.WriteAll(ExportRows(rows)); err != nil {
		return fmt.Errorf("cannot write csv rows: %w", err)
	}
	return nil
}
