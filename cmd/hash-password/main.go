// Command hash-password generates the bcrypt hash for the admin password.
// Put the output in ADMIN_PASSWORD_HASH; the server never stores the
// plaintext anywhere.
package main

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	fmt.Print("Enter admin password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading password")
		os.Exit(1)
	}

	password := string(bytePassword)
	if len(password) < 6 {
		fmt.Fprintln(os.Stderr, "Error: Password must be at least 6 characters")
		os.Exit(1)
	}

	fmt.Print("Confirm admin password: ")
	byteConfirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading password")
		os.Exit(1)
	}
	if string(byteConfirm) != password {
		fmt.Fprintln(os.Stderr, "Error: Passwords do not match")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword(bytePassword, bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: Failed to hash password")
		os.Exit(1)
	}

	fmt.Println("\nAdd this to your environment:")
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", string(hash))
}
