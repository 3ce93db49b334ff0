package models

import "fmt"

// Provider is the closed set of authentication providers. Exactly one
// credential record may exist per email, under exactly one provider.
type Provider string

const (
	ProviderCredential Provider = "CREDENTIAL"
	ProviderGoogle     Provider = "GOOGLE"
	ProviderGitHub     Provider = "GITHUB"
)

// Valid reports whether p is a known provider.
func (p Provider) Valid() bool {
	switch p {
	case ProviderCredential, ProviderGoogle, ProviderGitHub:
		return true
	}
	return false
}

// Social reports whether p is a federated provider.
func (p Provider) Social() bool {
	return p != ProviderCredential
}

// ParseProvider maps a wire string onto a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown provider %q", s)
	}
	return p, nil
}

// Authentication is the durable credential record. Email is plaintext in
// memory and encrypted at rest, with a deterministic hash stored alongside
// for lookup. PasswordHash is set only for ProviderCredential.
//
// IsNewUser is transient: it marks a freshly synthesized, not-yet-persisted
// federated-login record so the orchestrator performs implicit registration.
// It is never persisted.
type Authentication struct {
	UserID       string
	Email        string
	Provider     Provider
	PasswordHash string
	IsNewUser    bool
}
