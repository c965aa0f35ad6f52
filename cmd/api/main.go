package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

// @title Thyroid Report API
// @version 1.0
// @description Generates thyroid ultrasound reports as text and DOCX.
// @BasePath /
func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
