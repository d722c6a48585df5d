package main

import (
	"os"

	"github.com/SscSPs/posync/cmd/posync/cmd"
)

// @title POSync API
// @version 1.0
// @description Daily reconciliation dashboard for POS agents.
// @description Start a session with POST /sessions and send the returned id as X-Session-ID on every other request.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
