// scripts/generate_password.go prints a bcrypt hash for seeding an admin
// by hand: go run scripts/generate_password.go <password>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/pkg/auth"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}
	password := os.Args[1]

	cfg := &config.Config{Security: config.SecurityConfig{BcryptCost: 12}}
	passwords := auth.NewPasswordManager(cfg)

	hash, err := passwords.HashPassword(password)
	if err != nil {
		log.Fatal("Error generating hash: ", err)
	}

	if err := passwords.VerifyPassword(password, hash); err != nil {
		log.Fatal("Hash verification failed: ", err)
	}

	fmt.Println(hash)
}
