package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

var csvHeader = []string{"registration_no", "gpa", "rank", "percentile", "total_credits", "unranked"}

// WriteCSV serializes the flat columns of the ResultSet, one row per student
// with a header row. Numeric fields use fixed two-decimal precision; the
// GPA, rank and percentile cells of unranked students are left empty.
func WriteCSV(w io.Writer, rs ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rs.Rows {
		rec := []string{row.RegNumber, "", "", "",
			strconv.FormatFloat(row.TotalCredits, 'f', 2, 64),
			strconv.FormatBool(row.Unranked)}
		if !row.Unranked {
			rec[1] = strconv.FormatFloat(*row.GPA, 'f', 2, 64)
			rec[2] = strconv.Itoa(*row.Rank)
			rec[3] = strconv.FormatFloat(*row.Percentile, 'f', 2, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a serialized ResultSet back into its flat form. Module
// detail is not part of the flat format and comes back empty.
func ReadCSV(r io.Reader) (ResultSet, error) {
	cr := csv.NewReader(r)
	recs, err := cr.ReadAll()
	if err != nil {
		return ResultSet{}, err
	}
	if len(recs) == 0 || len(recs[0]) != len(csvHeader) {
		return ResultSet{}, fmt.Errorf("result csv: missing or malformed header")
	}
	rs := ResultSet{Rows: make([]Row, 0, len(recs)-1)}
	for i, rec := range recs[1:] {
		row := Row{RegNumber: rec[0]}
		if row.TotalCredits, err = strconv.ParseFloat(rec[4], 64); err != nil {
			return ResultSet{}, fmt.Errorf("result csv row %d: credits: %w", i+1, err)
		}
		if row.Unranked, err = strconv.ParseBool(rec[5]); err != nil {
			return ResultSet{}, fmt.Errorf("result csv row %d: unranked: %w", i+1, err)
		}
		if !row.Unranked {
			g, err := strconv.ParseFloat(rec[1], 64)
			if err != nil {
				return ResultSet{}, fmt.Errorf("result csv row %d: gpa: %w", i+1, err)
			}
			rk, err := strconv.Atoi(rec[2])
			if err != nil {
				return ResultSet{}, fmt.Errorf("result csv row %d: rank: %w", i+1, err)
			}
			p, err := strconv.ParseFloat(rec[3], 64)
			if err != nil {
				return ResultSet{}, fmt.Errorf("result csv row %d: percentile: %w", i+1, err)
			}
			row.GPA, row.Rank, row.Percentile = &g, &rk, &p
		}
		rs.Rows = append(rs.Rows, row)
	}
	return rs, nil
}
