package types

import (
	ierr "github.com/invoiceforge/invoiceforge/internal/errors"

	"github.com/samber/lo"
)

// PageSize identifies one of the canvas's built-in page formats.
type PageSize string

const (
	PageSizeA3      PageSize = "A3"
	PageSizeA4      PageSize = "A4"
	PageSizeA5      PageSize = "A5"
	PageSizeLetter  PageSize = "Letter"
	PageSizeLegal   PageSize = "Legal"
	PageSizeTabloid PageSize = "Tabloid"
)

func (p PageSize) String() string {
	return string(p)
}

func (p PageSize) Validate() error {
	allowed := []PageSize{
		PageSizeA3,
		PageSizeA4,
		PageSizeA5,
		PageSizeLetter,
		PageSizeLegal,
		PageSizeTabloid,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid page size").
			WithHint("Please provide a valid page size").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
