// Command token issues an access token for a learner ID so identified
// sessions can be exercised locally. It is not an account system.
//
// Usage:
//
//	token --learner=6f1c2e0a-0000-4000-8000-000000000001
//	token --new
//
// Requires AUTH_JWT_SECRET (and the usual config) to be set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordpath/internal/auth"
	"github.com/heartmarshall/wordpath/internal/config"
)

func main() {
	learnerFlag := flag.String("learner", "", "learner UUID to issue the token for")
	newFlag := flag.Bool("new", false, "generate a fresh learner UUID")
	flag.Parse()

	var learnerID uuid.UUID
	switch {
	case *newFlag:
		learnerID = uuid.New()
	case *learnerFlag != "":
		id, err := uuid.Parse(*learnerFlag)
		if err != nil {
			log.Fatalf("parse learner: %v", err)
		}
		learnerID = id
	default:
		fmt.Fprintln(os.Stderr, "Usage: token --learner=<uuid> | --new")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	mgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := mgr.GenerateAccessToken(learnerID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "learner %s, valid for %s\n", learnerID, cfg.Auth.AccessTokenTTL)
	fmt.Println(token)
}
