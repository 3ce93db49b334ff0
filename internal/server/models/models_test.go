package models

import "testing"

func TestParseProvider(t *testing.T) {
	for _, s := range []string{"CREDENTIAL", "GOOGLE", "GITHUB"} {
		p, err := ParseProvider(s)
		if err != nil {
			t.Fatalf("ParseProvider(%q) error: %v", s, err)
		}
		if string(p) != s {
			t.Fatalf("ParseProvider(%q) = %q", s, p)
		}
	}

	for _, s := range []string{"", "credential", "FACEBOOK"} {
		if _, err := ParseProvider(s); err == nil {
			t.Fatalf("ParseProvider(%q) expected error", s)
		}
	}
}

func TestProvider_Social(t *testing.T) {
	if ProviderCredential.Social() {
		t.Fatalf("CREDENTIAL is not a social provider")
	}
	if !ProviderGoogle.Social() || !ProviderGitHub.Social() {
		t.Fatalf("federated providers must report Social")
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("USER"); err != nil {
		t.Fatalf("USER must parse: %v", err)
	}
	if _, err := ParseRole("ADMIN"); err != nil {
		t.Fatalf("ADMIN must parse: %v", err)
	}
	if _, err := ParseRole("ROOT"); err == nil {
		t.Fatalf("ROOT must not parse")
	}
}
