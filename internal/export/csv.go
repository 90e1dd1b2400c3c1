// Package export renders uniform records as RFC 4180 CSV for download
// endpoints. Formatting only; callers decide what goes into the rows.
package export

import (
	"encoding/csv"
	"io"
)

// Write emits one header row followed by the data rows. Quoting and
// escaping of commas and quotes follows the csv writer's RFC 4180 rules.
func Write(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
