package email

import "buildlink/internal/logger"

// MockProvider logs instead of sending. Used when SMTP is not configured.
type MockProvider struct{}

func (m *MockProvider) Send(to, subject, body string) error {
	logger.Info("mock email", "to", to, "subject", subject)
	return nil
}
