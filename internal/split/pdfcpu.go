// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PdfcpuSplitter trims PDFs in-process. It needs no toolchain.
type PdfcpuSplitter struct {
	conf *model.Configuration
}

// NewPdfcpuSplitter returns a splitter using pdfcpu's default configuration.
func NewPdfcpuSplitter() *PdfcpuSplitter {
	return &PdfcpuSplitter{conf: model.NewDefaultConfiguration()}
}

// Split writes pages Start..End of req.Input to req.Output.
func (p *PdfcpuSplitter) Split(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	total, err := api.PageCountFile(req.Input)
	if err != nil {
		return "", fmt.Errorf("reading page count of %s: %w", req.Input, err)
	}

	start, end, err := Bounds(req.Pages, total)
	if err != nil {
		return "", err
	}

	selection := []string{fmt.Sprintf("%d-%d", start, end)}
	if err := api.TrimFile(req.Input, req.Output, selection, p.conf); err != nil {
		return "", fmt.Errorf("trimming %s to pages %d-%d: %w", req.Input, start, end, err)
	}
	return "", nil
}
