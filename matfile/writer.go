package matfile

// Encoder persists a set of named arrays as one self-contained output file.
//
// Implementations must create (or truncate) the file at path and write
// every variable; a partially written file after an error carries no
// consistency guarantee and the caller treats the failure as fatal.
type Encoder interface {
	Encode(path string, vars []Var) error
}
