package main

import (
	"os"

	"github.com/baharkarakas/onboarding-backend/cmd/wizardctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
