// Package matfile persists named numeric arrays, text and nested records as
// self-contained files readable by the target numerical-analysis
// environment.
//
// Two interchangeable backends implement the Encoder interface. The default
// backend writes the MAT-file level 5 container with every variable wrapped
// in a zlib-compressed element. Building with the "hdf5" tag swaps in a
// hierarchical (HDF5 / MAT v7.3) backend instead; the selection is fixed at
// compile time and reported by BackendName so the orchestrator can log it
// once per run.
//
// Values are modeled as a small closed tree (Numeric, Ints, Longs, Uints,
// Logicals, Char, CellColumn, Struct) covering exactly what the conversion
// outputs need. All numeric payloads are little-endian; matrices are stored
// column-major.
package matfile
