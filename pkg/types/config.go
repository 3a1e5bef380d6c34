package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "mdbridge/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for acquiring URL-sourced documents.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// TempDir is where downloaded documents are written (default os.TempDir()).
	TempDir string `json:"temp_dir,omitempty" yaml:"temp_dir,omitempty"`

	// Tokens maps a host name to a bearer token sent only to that host.
	Tokens map[string]string `json:"-" yaml:"-"`
}

// ToolchainConfig locates the external conversion toolchain.
type ToolchainConfig struct {
	// ProjectRoot is the directory holding the .venv with markitdown
	// installed (default: parent of the executable's directory).
	ProjectRoot string `json:"project_root,omitempty" yaml:"project_root,omitempty"`

	// ToolRunnerPath is the uv executable used to launch scripts when the
	// virtual environment has no interpreter (default ~/.local/bin/uv).
	ToolRunnerPath string `json:"tool_runner,omitempty" yaml:"tool_runner,omitempty"`

	// SplitScript is the PDF page splitter (default <ProjectRoot>/src/split_pdf.py).
	SplitScript string `json:"split_script,omitempty" yaml:"split_script,omitempty"`
}

// ConversionBackend identifies the document-to-Markdown tool.
type ConversionBackend string

const (
	BackendMarkitdown ConversionBackend = "markitdown"
	BackendContainer  ConversionBackend = "container"
)

// SplitterBackend identifies the PDF page splitter.
type SplitterBackend string

const (
	SplitterScript SplitterBackend = "script"
	SplitterPdfcpu SplitterBackend = "pdfcpu"
)

// ConversionConfig holds settings for the conversion pipeline.
type ConversionConfig struct {
	// Backend selects the conversion tool: markitdown or container.
	Backend ConversionBackend `json:"backend" yaml:"backend"`

	// Splitter selects the PDF page splitter: script or pdfcpu.
	Splitter SplitterBackend `json:"splitter" yaml:"splitter"`

	// OutputDir is where converted Markdown is persisted (default os.TempDir()).
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Timeout bounds each external tool invocation. Zero means no limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	Toolchain ToolchainConfig `json:"toolchain" yaml:"toolchain"`
}

// ReaderConfig holds settings for direct Markdown reads.
type ReaderConfig struct {
	// ShareDir restricts reads to files under this directory. Empty allows
	// any path. Populated from MD_SHARE_DIR.
	ShareDir string `json:"share_dir,omitempty" yaml:"share_dir,omitempty"`
}

// HistoryConfig holds settings for the optional conversion log.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables the log.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServeTransport selects how the server is exposed.
type ServeTransport string

const (
	TransportStdio ServeTransport = "stdio"
	TransportHTTP  ServeTransport = "http"
)

// ServeConfig holds settings for the MCP and REST surfaces.
type ServeConfig struct {
	Transport ServeTransport `json:"transport" yaml:"transport"`

	// Addr is the REST listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// Config groups all settings.
type Config struct {
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion"`
	Reader     ReaderConfig     `json:"reader" yaml:"reader"`
	History    HistoryConfig    `json:"history" yaml:"history"`
	Serve      ServeConfig      `json:"serve" yaml:"serve"`
}
