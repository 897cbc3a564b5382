package auth_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * This includes container setup, service operations, and assertions.
 */

const (
	testImageName = "storefront-auth-test:latest"

	jwtSecret     = "e2e-secret-0123456789abcdef012345"
	encryptionKey = "e2e-envelope-key"

	bootstrapToken = "test-bootstrap-token-12345"
	adminName      = "Administrator"
	adminEmail     = "admin@storefront.test"
	adminPassword  = "Admin123!"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Auth Service Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Auth Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/auth/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// baseEnv is the container environment shared by every test.
func baseEnv() map[string]string {
	return map[string]string{
		"AUTH_JWT_SECRET":     jwtSecret,
		"AUTH_ENCRYPTION_KEY": encryptionKey,
		"AUTH_ISSUER":         "storefront-auth",
		"AUTH_DATABASE_FILE":  "/tmp/auth.db",
		"AUTH_PEPPER_FILE":    "/tmp/pepper",
		"BOOTSTRAP_TOKEN":     bootstrapToken,
		"ENV":                 "test",
		"LOG_LEVEL":           "info",
		"LOG_FORMAT":          "json",
	}
}

// setupAuthContainer starts the auth service with relaxed rate limits and
// returns the base URL.
func setupAuthContainer(t *testing.T) (string, func()) {
	t.Helper()

	env := baseEnv()
	// Tests make many rapid requests which would otherwise hit the strict production limits
	env["RATELIMIT_STRICT_REQUESTS"] = "1000"
	env["RATELIMIT_STRICT_BURST"] = "1000"
	env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
	env["RATELIMIT_MODERATE_BURST"] = "1000"

	return startContainer(t, env)
}

// setupAuthContainerWithDefaultRateLimits starts the auth service with the
// production rate limits. Only rate limit tests should use it.
func setupAuthContainerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startContainer(t, baseEnv())
}

func startContainer(t *testing.T, env map[string]string) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return baseURL, cleanup
}

// newClient returns an SDK client able to open sealed login responses.
func newClient(t *testing.T, baseURL string) *authsdk.SDKClient {
	t.Helper()

	envelope, err := cryptox.NewEnvelope(encryptionKey)
	require.NoError(t, err)

	client := authsdk.NewSDKClient(baseURL)
	client.Opener = envelope
	return client
}

// bootstrapService creates the SuperAdmin and returns a session for it.
func bootstrapService(t *testing.T, client *authsdk.SDKClient) *authsdk.Session {
	t.Helper()
	ctx := t.Context()

	resp, err := client.Bootstrap(ctx, bootstrapToken, authsdk.BootstrapRequest{
		Name:     adminName,
		Email:    adminEmail,
		Password: adminPassword,
	})
	require.NoError(t, err, "Bootstrap should succeed")
	require.NotEmpty(t, resp.User.ID, "Admin user ID should not be empty")
	require.Equal(t, "superadmin", resp.User.Role)

	session, err := client.LoginSession(ctx, authsdk.LoginRequest{
		UserType: "SuperAdmin",
		Email:    adminEmail,
		Password: adminPassword,
	})
	require.NoError(t, err, "SuperAdmin login should succeed")
	return session
}

// signupIndividual registers an Individual user and returns its id.
func signupIndividual(t *testing.T, client *authsdk.SDKClient, phone, password string) string {
	t.Helper()

	resp, err := client.Signup(t.Context(), authsdk.SignupRequest{
		UserType: "Individual",
		Name:     "Ada Lovelace",
		Phone:    phone,
		Password: password,
	})
	require.NoError(t, err, "Signup should succeed")
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Data.User.ID)
	return resp.Data.User.ID
}

// assertStatus checks that err is an API error with the given status.
func assertStatus(t *testing.T, err error, status int, context string) {
	t.Helper()
	require.Error(t, err, context)
	require.True(t, authsdk.IsStatus(err, status), "%s - expected HTTP %d, got: %v", context, status, err)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
