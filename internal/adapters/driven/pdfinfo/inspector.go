// Package pdfinfo reads structural facts from PDF bytes using pdfcpu.
package pdfinfo

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.PDFInspector = (*Inspector)(nil)

// Inspector validates PDFs and reports their page count.
type Inspector struct {
	conf *model.Configuration
}

// NewInspector creates an inspector with relaxed validation, which accepts
// the minor structural defects common in real-world files.
func NewInspector() *Inspector {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Inspector{conf: conf}
}

// Inspect parses rs. Unreadable input yields an error wrapping domain.ErrNotPDF.
func (i *Inspector) Inspect(rs io.ReadSeeker) (*driven.PDFInfo, error) {
	ctx, err := api.ReadValidateAndOptimize(rs, i.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotPDF, err)
	}
	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("%w: no pages", domain.ErrNotPDF)
	}
	return &driven.PDFInfo{PageCount: ctx.PageCount}, nil
}
