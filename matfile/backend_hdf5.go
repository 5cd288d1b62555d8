//go:build hdf5

package matfile

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// NewEncoder returns the backend selected at build time: with the "hdf5"
// tag this is the hierarchical (MAT v7.3 style) encoder backed by the HDF5
// C library.
func NewEncoder() Encoder {
	return &HDF5Encoder{}
}

// BackendName reports the build-selected backend for the run log.
func BackendName() string {
	return "HDF5 (MAT v7.3 style)"
}

// HDF5Encoder writes each variable as an HDF5 dataset; cell and struct
// values become groups with one member per element or field. HDF5 applies
// its own chunk-level compression filters, so no explicit codec is wired
// here.
type HDF5Encoder struct{}

// h5loc is the subset of *hdf5.File and *hdf5.Group the encoder needs.
type h5loc interface {
	CreateDataset(name string, dtype *hdf5.Datatype, dspace *hdf5.Dataspace) (*hdf5.Dataset, error)
	CreateGroup(name string) (*hdf5.Group, error)
}

// Encode writes vars into one HDF5 file at path.
func (e *HDF5Encoder) Encode(path string, vars []Var) error {
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	for _, v := range vars {
		if err := e.write(f, v.Name, v.Value); err != nil {
			return fmt.Errorf("write %s: variable %q: %w", path, v.Name, err)
		}
	}

	return nil
}

func (e *HDF5Encoder) write(loc h5loc, name string, value Value) error {
	switch a := value.(type) {
	case *Numeric:
		return e.writeDataset(loc, name, hdf5.T_NATIVE_DOUBLE, a.Rows, a.Cols, &a.Data)
	case *Ints:
		return e.writeDataset(loc, name, hdf5.T_NATIVE_INT32, a.Rows, a.Cols, &a.Data)
	case *Longs:
		return e.writeDataset(loc, name, hdf5.T_NATIVE_INT64, a.Rows, a.Cols, &a.Data)
	case *Uints:
		return e.writeDataset(loc, name, hdf5.T_NATIVE_UINT64, a.Rows, a.Cols, &a.Data)
	case *Logicals:
		bytes := make([]uint8, len(a.Data))
		for i, v := range a.Data {
			if v {
				bytes[i] = 1
			}
		}

		return e.writeDataset(loc, name, hdf5.T_NATIVE_UINT8, a.Rows, a.Cols, &bytes)
	case *Char:
		return e.writeScalarString(loc, name, a.Text)
	case *CellColumn:
		g, err := loc.CreateGroup(name)
		if err != nil {
			return err
		}
		defer g.Close()
		for i, elem := range a.Elems {
			if err := e.write(g, fmt.Sprintf("%d", i+1), elem); err != nil {
				return fmt.Errorf("cell %d: %w", i, err)
			}
		}

		return nil
	case *Struct:
		g, err := loc.CreateGroup(name)
		if err != nil {
			return err
		}
		defer g.Close()
		for _, field := range a.Names() {
			if err := e.write(g, field, a.Get(field)); err != nil {
				return fmt.Errorf("field %q: %w", field, err)
			}
		}

		return nil
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}
}

func (e *HDF5Encoder) writeDataset(loc h5loc, name string, dtype *hdf5.Datatype, rows, cols int, data any) error {
	// The consumer reads MATLAB-order (column-major) data; HDF5 datasets
	// are row-major, so the dims are swapped.
	dims := []uint{uint(cols), uint(rows)}
	dspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return err
	}
	defer dspace.Close()

	dset, err := loc.CreateDataset(name, dtype, dspace)
	if err != nil {
		return err
	}
	defer dset.Close()

	return dset.Write(data)
}

func (e *HDF5Encoder) writeScalarString(loc h5loc, name, text string) error {
	dspace, err := hdf5.CreateSimpleDataspace([]uint{1}, nil)
	if err != nil {
		return err
	}
	defer dspace.Close()

	dset, err := loc.CreateDataset(name, hdf5.T_GO_STRING, dspace)
	if err != nil {
		return err
	}
	defer dset.Close()

	return dset.Write(&text)
}
