package testutil

import (
	"github.com/invoiceforge/invoiceforge/internal/config"
	"github.com/invoiceforge/invoiceforge/internal/i18n"

	"github.com/stretchr/testify/suite"
)

// BaseTestSuite resets process-wide state (configuration defaults and the
// translation table) around every test to avoid cross-test leakage.
type BaseTestSuite struct {
	suite.Suite
}

func (s *BaseTestSuite) SetupTest() {
	config.Reset()
	i18n.Reset()
}

func (s *BaseTestSuite) TearDownTest() {
	config.Reset()
	i18n.Reset()
}
