package testutil

import (
	"github.com/invoiceforge/invoiceforge/internal/domain/invoice"

	"github.com/stretchr/testify/mock"
)

var _ invoice.Renderer = (*MockRenderer)(nil)

// MockRenderer is a testify double for the renderer strategy seam.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) RenderToBytes(inv invoice.Invoiceable) ([]byte, error) {
	args := m.Called(inv)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) RenderToFile(inv invoice.Invoiceable, path string) error {
	args := m.Called(inv, path)
	return args.Error(0)
}
