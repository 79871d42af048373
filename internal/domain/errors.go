package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a funnel session is unknown or expired.
	ErrSessionNotFound = errors.New("funnel session not found")
	// ErrQuestionNotFound indicates a question ID outside the fixed catalog.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionMismatch indicates an answer aimed at a step other than the current one.
	ErrQuestionMismatch = errors.New("question is not the current step")
	// ErrOptionNotFound indicates a value outside the question's option set.
	ErrOptionNotFound = errors.New("option not found")
	// ErrContactFieldNotFound indicates a contact field other than name, email or phone.
	ErrContactFieldNotFound = errors.New("contact field not found")
	// ErrContactIncomplete is returned when submit runs without name and email.
	ErrContactIncomplete = errors.New("name and email are required")
	// ErrFunnelComplete indicates an answer arriving after the last question.
	ErrFunnelComplete = errors.New("all questions already answered")
	// ErrLeadStoreDisabled is returned by the stand-in store when Postgres is not configured.
	ErrLeadStoreDisabled = errors.New("lead store not configured")
	// ErrAuthDisabled is returned when login is attempted without a configured auth backend.
	ErrAuthDisabled = errors.New("authentication not configured")
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAuthTimeout is returned when the credential check exceeds the login timeout.
	ErrAuthTimeout = errors.New("login timed out")
)
