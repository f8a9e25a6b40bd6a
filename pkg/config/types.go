package config

// Settings represents the full config for one authenticated GraphQL client
type Settings struct {
	Name    string  `yaml:"name,omitempty"` // Optional identifier for the client
	GraphQL GraphQL `yaml:"graphql"`        // Required GraphQL endpoint configuration
	OAuth2  OAuth2  `yaml:"oauth2"`         // Required OAuth2 client credentials
}

// GraphQL contains the GraphQL endpoint details
type GraphQL struct {
	Endpoint string            `yaml:"endpoint"`          // Required GraphQL URL
	Headers  map[string]string `yaml:"headers,omitempty"` // Extra HTTP headers
}

// OAuth2 contains the client-credentials grant details
type OAuth2 struct {
	TokenURL     string `yaml:"token_url"`       // Token endpoint URL
	ClientID     string `yaml:"client_id"`       // OAuth2 client ID
	ClientSecret string `yaml:"client_secret"`   // OAuth2 client secret
	Scope        string `yaml:"scope,omitempty"` // Optional scope for the token
}
