package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/quillside/graphauth/pkg/config"
	"github.com/quillside/graphauth/pkg/core"
	"github.com/quillside/graphauth/pkg/transport/graphql"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not loaded:", err)
	}

	// Load the YAML settings, expanding ${VAR} references
	loader := config.NewSettingsLoader(&config.EnvExpander{})
	cfg, err := loader.Load("demo/viewer/viewer.yaml")
	if err != nil {
		log.Fatal(err)
	}

	client, err := core.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	req := graphql.NewRequest(`query { viewer { id login name } }`)
	resp, err := client.Execute(context.Background(), req, nil)
	if err != nil {
		log.Fatal("Query failed:", err)
	}
	if resp.HasErrors() {
		log.Fatal("GraphQL errors:", resp.Errors)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(json.RawMessage(resp.Data))

	fmt.Println("Done.")
}
