package vault_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/quillworks/promptvault/pkg/httpx"
	"github.com/quillworks/promptvault/pkg/vaultsdk"
	"github.com/stretchr/testify/require"
)

// TestMain relaxes the limiter profiles for the rest of the suite; this test
// temporarily restores a tight strict profile to prove the IP limiter fires.
// Limiters are built when routes are applied, so the override must be in
// place before setupVaultServer.
func TestStrictRateLimitOnRegister(t *testing.T) {
	saved := httpx.StrictLimit
	httpx.StrictLimit = httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
	t.Cleanup(func() { httpx.StrictLimit = saved })

	env := setupVaultServer(t)
	client := env.NewClient(t)
	ctx := context.Background()

	for i, username := range []string{"user_one", "user_two"} {
		_, err := client.Register(ctx, vaultsdk.RegisterRequest{
			Username: username,
			Email:    username + "@example.com",
			Password: testPassword,
		})
		require.NoError(t, err, "request %d should pass", i+1)
	}

	_, err := client.Register(ctx, vaultsdk.RegisterRequest{
		Username: "user_three",
		Email:    "user_three@example.com",
		Password: testPassword,
	})
	requireAPIError(t, err, http.StatusTooManyRequests)
}
