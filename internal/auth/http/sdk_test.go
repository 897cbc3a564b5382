package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestSDKAgainstRouter(t *testing.T) {
	h := newHarness(t)
	srv := httptest.NewServer(h.router)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := authsdk.NewSDKClient(srv.URL + "/")

	health, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)

	signup, err := client.Signup(ctx, authsdk.SignupRequest{
		UserType: "Individual",
		Name:     "Ada",
		Phone:    "+61400000009",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.True(t, signup.Success)

	exists, err := client.CheckUser(ctx, "+61400000009")
	require.NoError(t, err)
	require.True(t, exists)

	// Without an opener the sealed body cannot yield a session.
	sealed, err := client.Login(ctx, authsdk.LoginRequest{UserType: "Individual", Phone: "+61400000009", Password: "hunter22"})
	require.NoError(t, err)
	require.NotEmpty(t, sealed.EncryptedData)
	require.Nil(t, sealed.Data)

	client.Opener = h.cipher
	session, err := client.LoginSession(ctx, authsdk.LoginRequest{UserType: "Individual", Phone: "+61400000009", Password: "hunter22"})
	require.NoError(t, err)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, signup.Data.User.ID, me.ID)

	_, err = session.GetUser(ctx, me.ID)
	require.True(t, authsdk.IsStatus(err, http.StatusForbidden))

	_, err = client.Login(ctx, authsdk.LoginRequest{UserType: "Individual", Phone: "+61400000009", Password: "wrong"})
	require.True(t, authsdk.IsStatus(err, http.StatusUnauthorized))
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestSDKBootstrap(t *testing.T) {
	h := newHarness(t)
	srv := httptest.NewServer(h.router)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := authsdk.NewSDKClient(srv.URL)
	client.Opener = h.cipher

	res, err := client.Bootstrap(ctx, bootstrapToken, authsdk.BootstrapRequest{
		Name:     "Root",
		Email:    "root@store.example",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, "superadmin", res.User.Role)

	_, err = client.Bootstrap(ctx, bootstrapToken, authsdk.BootstrapRequest{Email: "b@store.example", Password: "x"})
	require.True(t, authsdk.IsStatus(err, http.StatusConflict))

	session, err := client.LoginSession(ctx, authsdk.LoginRequest{
		UserType: "SuperAdmin", Email: "root@store.example", Password: "correct horse",
	})
	require.NoError(t, err)

	confirmed, err := session.ConfirmEmail(ctx, res.User.ID)
	require.NoError(t, err)
	require.True(t, confirmed.EmailVerified)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
}
