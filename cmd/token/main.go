// Command token mints an access token for an operator of the register.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/emp-proj/employee-register-go/internal/config"
	"github.com/emp-proj/employee-register-go/internal/domain/user"
	"github.com/emp-proj/employee-register-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "user id stored in the token")
	role := flag.String("role", string(user.RoleViewer), "role: owner, manager or viewer")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to JWT_ACCESS_EXPIRATION_TIME)")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	exp := cfg.JWT.AccessExpiration
	if *ttl > 0 {
		exp = *ttl
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, exp).GenerateAccessToken(*userID, user.Role(*role))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
