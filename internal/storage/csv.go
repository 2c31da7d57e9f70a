package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/fluxsim/internal/field"
)

var axisNames = []string{"x", "y", "z"}

// WriteFieldCSV writes one row per grid point: the coordinate of every axis
// followed by phi, in flat index order.
func WriteFieldCSV(w io.Writer, g *field.Grid, phi field.Field) error {
	if err := g.Check(phi); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := append(append([]string(nil), axisNames[:g.Dim()]...), "phi")
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, g.Dim()+1)
	for k, v := range phi {
		for axis := 0; axis < g.Dim(); axis++ {
			row[axis] = strconv.FormatFloat(g.Mesh(axis)[k], 'f', 6, 64)
		}
		row[g.Dim()] = strconv.FormatFloat(v, 'g', -1, 64)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadFieldCSV reads the phi column written by WriteFieldCSV.
func ReadFieldCSV(r io.Reader, g *field.Grid) (field.Field, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = g.Dim() + 1

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	phi := make(field.Field, 0, g.Size())
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(record[g.Dim()], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(phi)+1, err)
		}
		phi = append(phi, v)
	}

	if err := g.Check(phi); err != nil {
		return nil, err
	}
	return phi, nil
}
