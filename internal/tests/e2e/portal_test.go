//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/probashi-portal/apiserver/config"
	"github.com/probashi-portal/apiserver/internal/db"
	"github.com/probashi-portal/apiserver/internal/server"
	"github.com/rs/zerolog"
)

const (
	serverPort = 18080
)

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	if err := waitForPostgres(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := runMigrations(root); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := startServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown()
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown()
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

func TestApplicationLifecycle(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	suffix := time.Now().UnixNano()

	adminEmail := fmt.Sprintf("admin_%d@example.com", suffix)
	applicantEmail := fmt.Sprintf("worker_%d@example.com", suffix)
	password := "testpass123!"

	if err := registerUser(t, baseURL, "Test Admin", adminEmail, password); err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if err := promoteToAdmin(adminEmail); err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	if err := registerUser(t, baseURL, "Test Worker", applicantEmail, password); err != nil {
		t.Fatalf("register applicant: %v", err)
	}

	adminToken, redirect, err := login(t, baseURL, adminEmail, password)
	if err != nil {
		t.Fatalf("login admin: %v", err)
	}
	if redirect != "/dashboard/admin" {
		t.Fatalf("unexpected admin redirect: %q", redirect)
	}

	applicantToken, redirect, err := login(t, baseURL, applicantEmail, password)
	if err != nil {
		t.Fatalf("login applicant: %v", err)
	}
	if redirect != "/dashboard/user" {
		t.Fatalf("unexpected applicant redirect: %q", redirect)
	}

	jobID, err := createJob(t, baseURL, adminToken)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	appID, err := applyForJob(t, baseURL, applicantToken, jobID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if status := applyAgain(t, baseURL, applicantToken, jobID); status != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate application, got %d", status)
	}

	if err := setStatus(t, baseURL, adminToken, appID, "approved"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	status, err := myApplicationStatus(t, baseURL, applicantToken, appID)
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if status != "approved" {
		t.Fatalf("expected approved status, got %q", status)
	}
}

func TestGuardRedirects(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	suffix := time.Now().UnixNano()
	email := fmt.Sprintf("guarded_%d@example.com", suffix)
	password := "testpass123!"

	if err := registerUser(t, baseURL, "Guarded User", email, password); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := login(t, baseURL, email, password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// No token: rejected toward the sign-in page.
	resp, err := http.Get(baseURL + "/api/applications/mine")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	redirect := decodeRedirect(t, resp)
	if resp.StatusCode != http.StatusUnauthorized || redirect != "/login" {
		t.Fatalf("expected 401 with /login redirect, got %d %q", resp.StatusCode, redirect)
	}

	// Ordinary role on an admin route: sent to its own landing page.
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/feedback", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	redirect = decodeRedirect(t, resp)
	if resp.StatusCode != http.StatusForbidden || redirect != "/dashboard/user" {
		t.Fatalf("expected 403 with user landing redirect, got %d %q", resp.StatusCode, redirect)
	}
}

func registerUser(t *testing.T, baseURL, name, email, password string) error {
	t.Helper()

	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := http.Post(baseURL+"/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("register status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func login(t *testing.T, baseURL, email, password string) (string, string, error) {
	t.Helper()

	payload := map[string]string{"email": email, "password": password}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", err
	}

	resp, err := http.Post(baseURL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("login status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed struct {
		Token    string `json:"token"`
		Redirect string `json:"redirect"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", "", err
	}
	if parsed.Token == "" {
		return "", "", fmt.Errorf("missing token in login response")
	}
	return parsed.Token, parsed.Redirect, nil
}

func promoteToAdmin(email string) error {
	cfg := config.LoadConfig()
	conn, err := sql.Open("postgres", db.PostgresURL(cfg))
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = conn.ExecContext(ctx, `
		UPDATE profiles SET role = 'admin', updated_at = NOW()
		WHERE user_id = (SELECT id FROM users WHERE email = $1)`, email)
	return err
}

func createJob(t *testing.T, baseURL, token string) (int, error) {
	t.Helper()

	payload := map[string]any{
		"title":          "Welder",
		"country":        "QA",
		"description":    "Structural welding on commercial sites.",
		"qualifications": "3 years experience",
		"salary_min":     90000,
		"salary_max":     140000,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/jobs", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("create job status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}
	return parsed.ID, nil
}

func applyForJob(t *testing.T, baseURL, token string, jobID int) (int, error) {
	t.Helper()

	body, err := json.Marshal(map[string]int{"jobId": jobID})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/applications", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("apply status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed struct {
		ID int `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, err
	}
	return parsed.ID, nil
}

func applyAgain(t *testing.T, baseURL, token string, jobID int) int {
	t.Helper()

	body, _ := json.Marshal(map[string]int{"jobId": jobID})
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/applications", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}

func setStatus(t *testing.T, baseURL, token string, appID int, status string) error {
	t.Helper()

	body, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/api/applications/%d/status", baseURL, appID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("set status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

func myApplicationStatus(t *testing.T, baseURL, token string, appID int) (string, error) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/applications/mine", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("list status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed []struct {
		ID     int    `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	for _, app := range parsed {
		if app.ID == appID {
			return app.Status, nil
		}
	}
	return "", fmt.Errorf("application %d not in listing", appID)
}

func decodeRedirect(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	var parsed struct {
		Redirect string `json:"redirect"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return parsed.Redirect
}

func waitForPostgres(ctx context.Context) error {
	cfg := config.LoadConfig()
	conn, err := sql.Open("postgres", db.PostgresURL(cfg))
	if err != nil {
		return err
	}
	defer conn.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := conn.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func runMigrations(root string) error {
	cfg := config.LoadConfig()
	migrationsPath := filepath.Join(root, "internal", "db", "migrations")
	migrationsURL := "file://" + migrationsPath

	migrator, err := migrate.New(migrationsURL, db.PostgresURL(cfg))
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func startServer() (*server.Server, error) {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("DB_HOST", "localhost")
	_ = os.Setenv("DB_PORT", "5432")
	_ = os.Setenv("DB_USER", "portal")
	_ = os.Setenv("DB_PASSWORD", "portal")
	_ = os.Setenv("DB_NAME", "portal")
	_ = os.Setenv("DB_USE_SSL", "false")
	_ = os.Setenv("STORAGE_BACKEND", "none")
	_ = os.Setenv("EVENTS_BACKEND", "none")

	cfg := config.LoadConfig()
	logger := zerolog.New(io.Discard)
	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
