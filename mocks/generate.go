package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/omnialpha/stock-selector/internal/dataprovider Provider
