// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageRange selects a 1-based, inclusive span of PDF pages. A zero bound
// means the bound was not requested: Start 0 reads from the first page and
// End 0 reads through the last.
type PageRange struct {
	Start int `json:"page_start,omitempty" yaml:"page_start,omitempty"`
	End   int `json:"page_end,omitempty" yaml:"page_end,omitempty"`
}

// IsSet reports whether either bound was requested.
func (p PageRange) IsSet() bool {
	return p.Start != 0 || p.End != 0
}

// ConversionRequest identifies one document to convert. Exactly one of
// FilePath or URL must be set.
type ConversionRequest struct {
	// FilePath is a local document path. It is not checked for existence
	// until the external tools open it.
	FilePath string `json:"file_path,omitempty" yaml:"file_path,omitempty"`

	// URL is a remote document fetched into a temporary file before conversion.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// PageRange restricts PDF inputs to a page range. Ignored for other formats.
	PageRange `yaml:",inline"`

	// Toolchain overrides the service-wide toolchain settings for this
	// request. Empty fields fall back to the service defaults.
	Toolchain ToolchainConfig `json:"toolchain,omitempty" yaml:"toolchain,omitempty"`
}

// Source returns the URL when set, otherwise the file path.
func (r ConversionRequest) Source() string {
	if r.URL != "" {
		return r.URL
	}
	return r.FilePath
}

// MarkdownResult is the outcome of a conversion or direct read.
type MarkdownResult struct {
	// Path is where the Markdown lives on disk.
	Path string `json:"path" yaml:"path"`

	// Text is the Markdown content.
	Text string `json:"text" yaml:"text"`
}
