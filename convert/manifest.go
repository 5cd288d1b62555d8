package convert

import (
	"github.com/ephys-tools/ncs2mat/header"
	"github.com/ephys-tools/ncs2mat/matfile"
)

// buildManifest assembles the ncs_headers struct from the aggregated
// headers plus the bookkeeping fields of this run. Aggregated fields come
// first in their reference order, the fixed bookkeeping fields last, so a
// reader paging through the struct sees the acquisition metadata the way
// the recording system ordered it.
func (r *run) buildManifest() *matfile.Struct {
	s := matfile.NewStruct()

	for _, f := range r.agg.Fields {
		name := header.SanitizeName(f.Name)
		if f.Static {
			s.Set(name, scalarValue(f.Value))
		} else {
			s.Set(name, sequenceValue(f.PerChannel))
		}
	}

	s.Set("export_version", matfile.Text(ExportVersion))
	s.Set("data_files", matfile.TextCellColumn(r.dataFiles))
	s.Set("has_data", matfile.LogicalColumn(r.hasData))
	s.Set("timestamp_file", matfile.Text(TimestampFileName))
	s.Set("event_file", matfile.Text(EventFileName))
	s.Set("scaling_applied", matfile.LogicalColumn(r.scaling))
	s.Set("inversion_applied", matfile.LogicalColumn(r.inversion))

	return s
}

// scalarValue converts one header value to its output representation.
// Times become ISO strings and absent values empty strings, both via the
// header sanitizer.
func scalarValue(v header.Value) matfile.Value {
	v = header.SanitizeValue(v)

	switch v.Kind() {
	case header.KindString:
		return matfile.Text(v.Str())
	case header.KindInt:
		return matfile.LongScalar(v.Int())
	case header.KindFloat:
		return matfile.Scalar(v.Float())
	case header.KindBool:
		return matfile.LogicalScalar(v.Bool())
	default:
		return matfile.Text("")
	}
}

// sequenceValue converts one per-channel value sequence to its output
// representation. Homogeneous sequences become typed columns; anything
// mixed falls back to a cell column of per-channel scalars.
func sequenceValue(vals []header.Value) matfile.Value {
	if len(vals) == 0 {
		return matfile.Text("")
	}

	allBool, allInt, allNumeric := true, true, true
	for _, v := range vals {
		switch v.Kind() {
		case header.KindBool:
			allInt, allNumeric = false, false
		case header.KindInt:
			allBool = false
		case header.KindFloat:
			allBool, allInt = false, false
		default:
			allBool, allInt, allNumeric = false, false, false
		}
	}

	switch {
	case allBool:
		col := make([]bool, len(vals))
		for i, v := range vals {
			col[i] = v.Bool()
		}

		return matfile.LogicalColumn(col)
	case allInt:
		col := make([]int64, len(vals))
		for i, v := range vals {
			col[i] = v.Int()
		}

		return matfile.LongColumn(col)
	case allNumeric:
		col := make([]float64, len(vals))
		for i, v := range vals {
			if v.Kind() == header.KindInt {
				col[i] = float64(v.Int())
			} else {
				col[i] = v.Float()
			}
		}

		return matfile.Column(col)
	default:
		cells := make([]matfile.Value, len(vals))
		for i, v := range vals {
			cells[i] = scalarValue(v)
		}

		return &matfile.CellColumn{Elems: cells}
	}
}
