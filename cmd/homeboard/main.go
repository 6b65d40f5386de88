package main

import (
	"os"

	"github.com/wonny/homeboard/backend/cmd/homeboard/commands"
)

// main is the entry point for the homeboard CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/homeboard [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
