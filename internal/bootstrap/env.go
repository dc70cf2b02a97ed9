package bootstrap

import (
	"log"

	"github.com/joho/godotenv"
)

// Loadenv loads a .env file into the process environment when one exists.
func Loadenv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
}
