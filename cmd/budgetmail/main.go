package main

import (
	"github.com/joho/godotenv"

	"budgetmail/internal/cli"
	"budgetmail/internal/log"
)

func main() {
	// A missing .env is fine, the config file carries everything else.
	_ = godotenv.Load()

	log.SetDefault(log.New(log.DefaultConfig()))

	cli.Execute()
}
