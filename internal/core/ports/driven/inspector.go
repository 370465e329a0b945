package driven

import "io"

// PDFInfo describes a PDF read locally.
type PDFInfo struct {
	PageCount int
}

// PDFInspector reads PDFs locally without contacting any service.
type PDFInspector interface {
	// Inspect validates rs as a PDF and reports its page count.
	// Returns an error wrapping domain.ErrNotPDF when rs is not a readable PDF.
	Inspect(rs io.ReadSeeker) (*PDFInfo, error)
}
