// Command issue-token mints a bearer token for local development when the
// server runs with AUTH_PROVIDER=jwt.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hongminglow/packpoint-be/internal/auth"
	"github.com/hongminglow/packpoint-be/internal/config"
)

func main() {
	uid := flag.String("uid", "", "external subject id to issue the token for")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.AuthProvider != config.ProviderJWT {
		fmt.Fprintf(os.Stderr, "AUTH_PROVIDER is %q; tokens can only be issued for %q\n", cfg.AuthProvider, config.ProviderJWT)
		os.Exit(2)
	}

	token, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL).Generate(*uid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
