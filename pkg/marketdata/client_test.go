package marketdata

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/helmsman-lab/helmsman-trading/pkg/errors"
	"github.com/helmsman-lab/helmsman-trading/pkg/marketdata/provider"
)

type ClientTestSuite struct {
	suite.Suite
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (suite *ClientTestSuite) TestNewClientBinance() {
	client, err := NewClient(ClientConfig{
		ProviderType: provider.TypeBinance,
		WriterType:   WriterDuckDB,
		DataPath:     suite.T().TempDir(),
	}, nil)
	suite.Require().NoError(err)
	suite.NotNil(client)
}

func (suite *ClientTestSuite) TestNewClientPolygonRequiresKey() {
	_, err := NewClient(ClientConfig{
		ProviderType: provider.TypePolygon,
		WriterType:   WriterDuckDB,
		DataPath:     suite.T().TempDir(),
	}, nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ClientTestSuite) TestNewClientPolygonWithKey() {
	client, err := NewClient(ClientConfig{
		ProviderType:  provider.TypePolygon,
		WriterType:    WriterDuckDB,
		DataPath:      suite.T().TempDir(),
		PolygonAPIKey: "test-key",
	}, nil)
	suite.Require().NoError(err)
	suite.NotNil(client)
}

func (suite *ClientTestSuite) TestNewClientUnknownProvider() {
	_, err := NewClient(ClientConfig{
		ProviderType: provider.Type("bloomberg"),
		WriterType:   WriterDuckDB,
		DataPath:     suite.T().TempDir(),
	}, nil)
	suite.Error(err)
}

func (suite *ClientTestSuite) TestNewClientMissingDataPath() {
	_, err := NewClient(ClientConfig{
		ProviderType: provider.TypeBinance,
		WriterType:   WriterDuckDB,
	}, nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
