package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go-stock-ledger/internal/config"
	"go-stock-ledger/pkg/jwt"
)

func main() {
	operator := flag.String("operator", "", "name recorded as the actor of mutations")
	ttl := flag.Duration("ttl", jwt.DefaultTTL, "token lifetime")
	flag.Parse()

	// 1. Load Env
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if cfg.Auth.Secret == "" {
		log.Fatal("❌ JWT_SECRET is not set, the server does not check tokens")
	}
	if *operator == "" {
		log.Fatal("❌ -operator is required")
	}

	// 2. Sign
	token, err := jwt.GenerateToken([]byte(cfg.Auth.Secret), *operator, *ttl)
	if err != nil {
		log.Fatalf("❌ Failed to sign token: %v", err)
	}

	log.Printf("✅ Token for %s valid until %s", *operator, time.Now().Add(*ttl).Format(time.RFC3339))
	fmt.Println(token)
}
