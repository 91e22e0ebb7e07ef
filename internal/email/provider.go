package email

// Provider delivers transactional email. The password-reset flow is the only
// caller in this subsystem; delivery failures are returned to it, not
// swallowed.
type Provider interface {
	Send(to, subject, body string) error
}
