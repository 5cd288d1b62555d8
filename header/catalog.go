package header

// InternalSuffix marks fields holding an internal-only parsed-timestamp
// representation of a sibling text field. Such fields never reach the
// manifest.
const InternalSuffix = "_dt"

// Catalog partitions the known header fields into static candidates (one
// value for the whole recording) and varying candidates (one value per
// channel). Fields observed outside the catalog are reported as anomalies
// but still processed.
type Catalog struct {
	static  map[string]struct{}
	varying map[string]struct{}
}

// NewCatalog builds a Catalog from explicit static and varying field lists.
func NewCatalog(static, varying []string) *Catalog {
	c := &Catalog{
		static:  make(map[string]struct{}, len(static)),
		varying: make(map[string]struct{}, len(varying)),
	}
	for _, name := range static {
		c.static[name] = struct{}{}
	}
	for _, name := range varying {
		c.varying[name] = struct{}{}
	}

	return c
}

// DefaultCatalog returns the catalog of Neuralynx NCS header fields.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]string{
			"FileType", "FileVersion", "SessionUUID", "TimeClosed", "TimeClosed_dt",
			"ProbeName", "RecordSize", "ApplicationName",
			"AcquisitionSystem", "ADMaxValue", "NumADChannels", "InputInverted",
			"DSPLowCutFilterEnabled", "DspLowCutFrequency", "DspLowCutNumTaps",
			"DspLowCutFilterType", "DSPHighCutFilterEnabled", "DspHighCutNumTaps",
			"DspHighCutFilterType", "DspDelayCompensation", "DspFilterDelay_µs",
		},
		[]string{
			"TimeCreated", "TimeOpened_dt", "FileName", "FileUUID", "OriginalFileName",
			"AcqEntName", "ADChannel", "ReferenceChannel", "SamplingFrequency",
			"ADBitVolts", "InputRange", "DspHighCutFrequency",
		},
	)
}

// IsStatic reports whether the field is a static candidate.
func (c *Catalog) IsStatic(name string) bool {
	_, ok := c.static[name]
	return ok
}

// IsVarying reports whether the field is a varying candidate.
func (c *Catalog) IsVarying(name string) bool {
	_, ok := c.varying[name]
	return ok
}

// Known reports whether the field appears in either partition.
func (c *Catalog) Known(name string) bool {
	return c.IsStatic(name) || c.IsVarying(name)
}
