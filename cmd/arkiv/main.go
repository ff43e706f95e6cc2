package main

import (
	_ "github.com/joho/godotenv/autoload"
)

// @title Arkiv API
// @version 1.0
// @description Archive box tracking with QR label sheets.
// @BasePath /
func main() {
	Execute()
}
