//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/stemsi/sekolah-console/internal/model"
)

const (
	defaultConsoleURL = "http://localhost:8080"
	className         = "SD1-E2E"
)

var (
	consoleURL string
	dbURL      string
	adminEmail string
	adminPass  string
	adminName  string
	client     *http.Client
	regionID   int
	classID    int
	startedAt  time.Time
)

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	consoleURL = os.Getenv("CONSOLE_URL")
	if consoleURL == "" {
		consoleURL = defaultConsoleURL
	}
	dbURL = os.Getenv("DATABASE_URL")
	adminEmail = os.Getenv("E2E_ADMIN_EMAIL")
	adminPass = os.Getenv("E2E_ADMIN_PASSWORD")
	adminName = os.Getenv("E2E_ADMIN_NAME")
	if adminEmail == "" || adminPass == "" || adminName == "" {
		fmt.Println("Setup failed: E2E_ADMIN_EMAIL, E2E_ADMIN_PASSWORD and E2E_ADMIN_NAME are required")
		os.Exit(1)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		fmt.Printf("Setup failed: %v\n", err)
		os.Exit(1)
	}
	client = &http.Client{
		Jar:     jar,
		Timeout: 15 * time.Second,
		// The console answers with 303s; the test inspects them.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	startedAt = time.Now().UTC()

	os.Exit(m.Run())
}

func TestE2EFlow(t *testing.T) {
	// Step 1: Anonymous visit is sent to login
	t.Run("AnonymousRedirect", func(t *testing.T) {
		resp, err := do(http.MethodGet, "/dashboard", nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
		if loc := resp.Header.Get("Location"); loc != "/login?next=%2Fdashboard" {
			t.Fatalf("unexpected Location %q", loc)
		}
	})

	// Step 2: Admin login without a name is rejected by the form
	t.Run("AdminLoginNameRequired", func(t *testing.T) {
		resp, err := do(http.MethodPost, "/login/admin", map[string]string{
			"identifier": adminEmail,
			"password":   adminPass,
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
		var body envelope
		decodeJSON(t, resp, &body)
		if body.Error == nil || body.Error.Fields["name"] == "" {
			t.Fatalf("expected a name field error, got %+v", body.Error)
		}
	})

	// Step 3: Admin login returns to the remembered path
	t.Run("AdminLogin", func(t *testing.T) {
		resp, err := do(http.MethodPost, "/login/admin", map[string]string{
			"identifier": adminEmail,
			"password":   adminPass,
			"name":       adminName,
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
		if loc := resp.Header.Get("Location"); loc != "/dashboard" {
			t.Fatalf("expected remembered /dashboard, got %q", loc)
		}
	})

	// Step 4: Root lands admins on user administration
	t.Run("AdminLanding", func(t *testing.T) {
		resp, err := do(http.MethodGet, "/", nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != "/users" {
			t.Fatalf("status %d, Location %q", resp.StatusCode, resp.Header.Get("Location"))
		}
	})

	// Step 5: Create a region and a class in it
	t.Run("CreateRegionAndClass", func(t *testing.T) {
		resp, err := do(http.MethodPost, "/classes", model.RegionRequest{Name: "E2E Region " + strconv.FormatInt(startedAt.Unix(), 10)})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var created struct {
			Data struct {
				Region model.Region `json:"region"`
			} `json:"data"`
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
		decodeJSON(t, resp, &created)
		resp.Body.Close()
		regionID = created.Data.Region.ID
		if regionID == 0 {
			t.Fatal("region ID missing")
		}

		resp, err = do(http.MethodPost, fmt.Sprintf("/classes/%d/class", regionID), model.ClassRequest{Name: className})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
		var class struct {
			Data struct {
				Class model.Class `json:"class"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &class)
		classID = class.Data.Class.ID
		if classID == 0 {
			t.Fatal("class ID missing")
		}
	})

	// Step 6: A class name without a grade code never reaches the backend
	t.Run("RejectClassWithoutGrade", func(t *testing.T) {
		resp, err := do(http.MethodPost, fmt.Sprintf("/classes/%d/class", regionID), model.ClassRequest{Name: "XY1"})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 7: The new class shows under SD1
	t.Run("CategoryListsClass", func(t *testing.T) {
		resp, err := do(http.MethodGet, fmt.Sprintf("/classes/%d/grade/sd", regionID), nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Grades []struct {
					Grade   string        `json:"grade"`
					Classes []model.Class `json:"classes"`
				} `json:"grades"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		found := false
		for _, g := range body.Data.Grades {
			for _, cl := range g.Classes {
				if cl.ID == classID && g.Grade == "SD1" {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("class %d not listed under SD1", classID)
		}
	})

	// Step 8: Clean up and check the audit trail
	t.Run("CleanupAndAudit", func(t *testing.T) {
		for _, path := range []string{
			fmt.Sprintf("/classes/%d/class/%d", regionID, classID),
			fmt.Sprintf("/classes/%d", regionID),
		} {
			resp, err := do(http.MethodDelete, path, nil)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("DELETE %s status %d: %s", path, resp.StatusCode, readBody(resp))
			}
			resp.Body.Close()
		}

		if dbURL == "" {
			t.Skip("DATABASE_URL not set; audit trail not checked")
		}

		ctx := context.Background()
		conn, err := pgx.Connect(ctx, dbURL)
		if err != nil {
			t.Fatalf("db connect: %v", err)
		}
		defer conn.Close(ctx)

		// The worker writes asynchronously.
		deadline := time.Now().Add(10 * time.Second)
		for {
			var n int
			err := conn.QueryRow(ctx,
				`SELECT COUNT(*) FROM console_audit WHERE actor_role = 'admin' AND created_at >= $1`, startedAt,
			).Scan(&n)
			if err != nil {
				t.Fatalf("count audit rows: %v", err)
			}
			if n >= 4 {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("expected at least 4 audit rows, got %d", n)
			}
			time.Sleep(500 * time.Millisecond)
		}
	})

	// Step 9: Logout ends access
	t.Run("Logout", func(t *testing.T) {
		resp, err := do(http.MethodPost, "/logout", nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()

		resp, err = do(http.MethodGet, "/users", nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("Expected 303 after logout, got %d", resp.StatusCode)
		}
	})
}

// ─── Helpers ─────────────────────────────────────────────────────────

type envelope struct {
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
	Redirect string `json:"redirect"`
}

func do(method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, consoleURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return client.Do(req)
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
