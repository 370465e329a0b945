package domain

import (
	"fmt"
	"net/url"
	"strconv"
)

// Configuration keys.
const (
	KeyServiceURL       = "service.url"
	KeyServiceTimeout   = "service.timeout_seconds"
	KeyServiceRateLimit = "service.rate_limit"
	KeyUploadValidate   = "upload.validate"
	KeyOutputDir        = "output.dir"
	KeyOutputFilename   = "output.filename"
	KeyPreviewAddr      = "preview.addr"
)

// Defaults applied when a key is absent from the config file.
const (
	DefaultServiceURL       = "http://localhost:8000/"
	DefaultServiceTimeout   = 120
	DefaultServiceRateLimit = 2.0
	DefaultOutputFilename   = "remediated.pdf"
	DefaultPreviewAddr      = "127.0.0.1:0"
)

// AppSettings holds the application configuration.
type AppSettings struct {
	// ServiceURL is the base URL of the tagging and rendering service.
	ServiceURL string

	// TimeoutSeconds bounds every remote call.
	TimeoutSeconds int

	// RateLimit is the sustained number of outbound requests per second.
	RateLimit float64

	// ValidateUploads checks source files locally before upload.
	ValidateUploads bool

	// OutputDir is where downloads are written. Empty means the working directory.
	OutputDir string

	// OutputFilename is the default download name.
	OutputFilename string

	// PreviewAddr is the listen address of the local preview server.
	PreviewAddr string
}

// DefaultAppSettings returns settings with all defaults applied.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		ServiceURL:      DefaultServiceURL,
		TimeoutSeconds:  DefaultServiceTimeout,
		RateLimit:       DefaultServiceRateLimit,
		ValidateUploads: true,
		OutputFilename:  DefaultOutputFilename,
		PreviewAddr:     DefaultPreviewAddr,
	}
}

// Validate checks the settings are usable.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.ServiceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: service url %q", ErrInvalidInput, s.ServiceURL)
	}
	if s.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidInput)
	}
	if s.RateLimit <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidInput)
	}
	if s.OutputFilename == "" {
		return fmt.Errorf("%w: output filename is required", ErrInvalidInput)
	}
	return nil
}

// SettingKeys lists the configurable keys in display order.
var SettingKeys = []string{
	KeyServiceURL,
	KeyServiceTimeout,
	KeyServiceRateLimit,
	KeyUploadValidate,
	KeyOutputDir,
	KeyOutputFilename,
	KeyPreviewAddr,
}

// Value returns the display value of key.
func (s AppSettings) Value(key string) (string, bool) {
	switch key {
	case KeyServiceURL:
		return s.ServiceURL, true
	case KeyServiceTimeout:
		return strconv.Itoa(s.TimeoutSeconds), true
	case KeyServiceRateLimit:
		return strconv.FormatFloat(s.RateLimit, 'f', -1, 64), true
	case KeyUploadValidate:
		return strconv.FormatBool(s.ValidateUploads), true
	case KeyOutputDir:
		return s.OutputDir, true
	case KeyOutputFilename:
		return s.OutputFilename, true
	case KeyPreviewAddr:
		return s.PreviewAddr, true
	default:
		return "", false
	}
}
