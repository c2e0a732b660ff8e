package mocks

import (
	"context"
)

// MockPaymentProvider is a fake payment processor recording the last
// requested intent.
type MockPaymentProvider struct {
	LastAmountMinor int64
	LastCurrency    string
	ClientSecret    string
	Err             error
	Calls           int
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{ClientSecret: "cs_test_secret"}
}

func (m *MockPaymentProvider) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	m.Calls++
	m.LastAmountMinor = amountMinor
	m.LastCurrency = currency
	if m.Err != nil {
		return "", m.Err
	}
	return m.ClientSecret, nil
}
