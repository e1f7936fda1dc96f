package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/stemsi/sekolah-console/internal/access"
	"github.com/stemsi/sekolah-console/internal/apiclient"
	"github.com/stemsi/sekolah-console/internal/auth"
	"github.com/stemsi/sekolah-console/internal/config"
	"github.com/stemsi/sekolah-console/internal/formerror"
	"github.com/stemsi/sekolah-console/internal/hierarchy"
	"github.com/stemsi/sekolah-console/internal/logger"
	"github.com/stemsi/sekolah-console/internal/model"
	"github.com/stemsi/sekolah-console/internal/session"
	"golang.org/x/term"
)

// check-login signs in against the configured backend the way the console
// does and prints where the account would land and what it could see.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	client := apiclient.New(cfg, log)
	manager := auth.NewManager(client, session.NewMemoryStore(), log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("=== Check Console Login (%s) ===\n", cfg.APIBaseURL())

	fmt.Printf("Enter Role %v: ", auth.LoginRoles)
	roleStr, _ := reader.ReadString('\n')
	role, ok := model.ParseRole(strings.TrimSpace(roleStr))
	if !ok {
		fmt.Println("Error: Unknown role")
		return
	}

	var name string
	if role == model.RoleAdmin {
		fmt.Print("Enter Admin Name: ")
		name, _ = reader.ReadString('\n')
		name = strings.TrimSpace(name)
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	fmt.Println() // Newline after password input

	// ─── Logic ─────────────────────────────────────────────────────────
	s, err := manager.Open(ctx, uuid.New().String())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open session")
	}

	user, err := s.Login(ctx, auth.LoginInput{
		Identifier: email,
		Password:   string(bytePassword),
		Role:       role,
		Name:       name,
	})
	if err != nil {
		res := formerror.Normalize(err)
		fmt.Printf("\nLogin failed: %s\n", res.Message())
		for field, msg := range res.FieldErrors {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		os.Exit(1)
	}

	fmt.Printf("\nSuccess! Signed in as '%s' (%s), role %s\n", user.Name, user.Email, user.Role)
	fmt.Printf("Landing route: %s\n", access.Landing(access.ViewOf(s)).Target)
	for _, grp := range hierarchy.Tree(user) {
		fmt.Printf("  %s: %s\n", grp.Category, strings.Join(grp.Grades, ", "))
	}
}
