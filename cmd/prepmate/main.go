package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// optional .env for local development, real deployments use env vars
	if err := godotenv.Load(); err == nil {
		log.Printf("loaded environment from .env")
	}

	root := &cobra.Command{Use: "prepmate"}
	root.AddCommand(serveCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
