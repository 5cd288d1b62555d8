//go:build !hdf5

package matfile

// NewEncoder returns the backend selected at build time: without the "hdf5"
// tag this is the level 5 encoder with zlib compression.
func NewEncoder() Encoder {
	return NewMat5Encoder()
}

// BackendName reports the build-selected backend for the run log.
func BackendName() string {
	return "MAT level 5 (zlib compression)"
}
