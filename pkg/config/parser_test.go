package config

import (
	"strings"
	"testing"
)

const validYAML = `
name: demo-client
graphql:
  endpoint: https://api.example.com/graphql
  headers:
    X-Tenant: acme
oauth2:
  token_url: https://auth.example.com/token
  client_id: c1
  client_secret: s1
  scope: read:data
`

func TestSettingsLoaderParse(t *testing.T) {
	t.Run("ValidSettings", func(t *testing.T) {
		loader := NewSettingsLoader(nil)
		settings, err := loader.Parse([]byte(validYAML))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if settings.Name != "demo-client" {
			t.Errorf("Expected name 'demo-client', got '%s'", settings.Name)
		}
		if settings.GraphQL.Endpoint != "https://api.example.com/graphql" {
			t.Errorf("Unexpected endpoint: %s", settings.GraphQL.Endpoint)
		}
		if settings.GraphQL.Headers["X-Tenant"] != "acme" {
			t.Errorf("Expected X-Tenant header, got %v", settings.GraphQL.Headers)
		}
		if settings.OAuth2.ClientID != "c1" || settings.OAuth2.ClientSecret != "s1" {
			t.Errorf("Unexpected credentials: %+v", settings.OAuth2)
		}
		if settings.OAuth2.Scope != "read:data" {
			t.Errorf("Expected scope 'read:data', got '%s'", settings.OAuth2.Scope)
		}
	})

	t.Run("EnvExpansion", func(t *testing.T) {
		t.Setenv("TEST_CLIENT_SECRET", "from-env")

		yaml := strings.Replace(validYAML, "client_secret: s1", "client_secret: ${TEST_CLIENT_SECRET}", 1)
		loader := NewSettingsLoader(&EnvExpander{})
		settings, err := loader.Parse([]byte(yaml))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if settings.OAuth2.ClientSecret != "from-env" {
			t.Errorf("Expected expanded secret 'from-env', got '%s'", settings.OAuth2.ClientSecret)
		}
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		loader := NewSettingsLoader(nil)
		_, err := loader.Parse([]byte(`name: broken`))
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}
		// All failures should be reported together
		for _, field := range []string{"graphql.endpoint", "oauth2.token_url", "oauth2.client_id", "oauth2.client_secret"} {
			if !strings.Contains(err.Error(), field) {
				t.Errorf("Expected error to mention %s, got: %v", field, err)
			}
		}
	})

	t.Run("InvalidTokenURL", func(t *testing.T) {
		yaml := strings.Replace(validYAML, "https://auth.example.com/token", "not a url", 1)
		loader := NewSettingsLoader(nil)
		_, err := loader.Parse([]byte(yaml))
		if err == nil || !strings.Contains(err.Error(), "oauth2.token_url") {
			t.Errorf("Expected token_url validation error, got: %v", err)
		}
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		loader := NewSettingsLoader(nil)
		_, err := loader.Parse([]byte(`graphql: [`))
		if err == nil || !strings.Contains(err.Error(), "failed to parse YAML") {
			t.Errorf("Expected YAML parse error, got: %v", err)
		}
	})
}
