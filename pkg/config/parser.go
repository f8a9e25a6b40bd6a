package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// ValidationError describes a single invalid field
type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator checks a parsed Settings value
type Validator interface {
	Validate(settings *Settings) []ValidationError
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables within the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// SettingsLoader loads and validates Settings from YAML
type SettingsLoader struct {
	expander   VariableExpander
	validators []Validator
}

// NewSettingsLoader creates a new SettingsLoader with the given components
func NewSettingsLoader(expander VariableExpander, validators ...Validator) *SettingsLoader {
	if len(validators) == 0 {
		validators = []Validator{&RequiredFieldValidator{}}
	}
	return &SettingsLoader{
		expander:   expander,
		validators: validators,
	}
}

// Load reads a settings file from disk and parses it
func (l *SettingsLoader) Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return l.Parse(data)
}

// Parse parses YAML settings, expanding variables and running validators
func (l *SettingsLoader) Parse(data []byte) (*Settings, error) {
	if l.expander != nil {
		data = l.expander.Expand(data)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Collect all validation failures rather than stopping at the first
	var result *multierror.Error
	for _, validator := range l.validators {
		for _, verr := range validator.Validate(&settings) {
			result = multierror.Append(result, verr)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &settings, nil
}

// RequiredFieldValidator validates required Settings fields
type RequiredFieldValidator struct{}

// Validate checks that all required fields are present
func (v *RequiredFieldValidator) Validate(settings *Settings) []ValidationError {
	var errs []ValidationError

	if settings.GraphQL.Endpoint == "" {
		errs = append(errs, ValidationError{Field: "graphql.endpoint", Message: "is required"})
	}
	if settings.OAuth2.TokenURL == "" {
		errs = append(errs, ValidationError{Field: "oauth2.token_url", Message: "is required"})
	} else if _, err := url.ParseRequestURI(settings.OAuth2.TokenURL); err != nil {
		errs = append(errs, ValidationError{Field: "oauth2.token_url", Message: "is not a valid URL"})
	}
	if settings.OAuth2.ClientID == "" {
		errs = append(errs, ValidationError{Field: "oauth2.client_id", Message: "is required"})
	}
	if settings.OAuth2.ClientSecret == "" {
		errs = append(errs, ValidationError{Field: "oauth2.client_secret", Message: "is required"})
	}

	return errs
}
