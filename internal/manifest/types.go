package manifest

// Manifest is the JSON record of one pixform run.
type Manifest struct {
	Version     int      `json:"version"`
	GeneratedAt string   `json:"generated_at"`
	Operation   string   `json:"operation"`
	Geometry    string   `json:"geometry,omitempty"`
	Outputs     []Output `json:"outputs"`
	Stats       Stats    `json:"stats"`
}

// Output is one processed file.
type Output struct {
	Source     string `json:"source"`      // input path relative to the scan root
	SourceSize int64  `json:"source_size"` // input bytes on disk
	Path       string `json:"path"`        // output path relative to the output dir
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Format     string `json:"format"`
	Size       int64  `json:"size"`              // output bytes on disk
	Hash       string `json:"hash"`              // first 16 hex chars of xxhash64
	Density    string `json:"density,omitempty"` // "XxY" dpi, resample only
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalOutputs     int   `json:"total_outputs"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
