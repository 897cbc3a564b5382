/*
Package authsdk provides a client SDK for the storefront authentication service.

# SDKClient vs Session

  - SDKClient: public endpoints (signup, login, recovery, existence checks, bootstrap)
  - Session: calls that carry a session token (profile, admin account operations)

	client := authsdk.NewSDKClient("https://auth.example.com")

	// Check service health
	health, err := client.GetLiveness(ctx)

	// Register an Individual account
	_, err = client.Signup(ctx, authsdk.SignupRequest{
		UserType: "Individual",
		Phone:    "+61400000001",
		Password: "correct horse",
	})

# Sealed Login Responses

The login endpoint seals its body. Configure an Opener holding the shared
envelope key to get the token back:

	client.Opener = envelope
	session, err := client.LoginSession(ctx, authsdk.LoginRequest{
		UserType: "Individual",
		Phone:    "+61400000001",
		Password: "correct horse",
	})
	me, err := session.Me(ctx)

# Errors

Non-2xx responses surface as *APIError carrying the status code and the
server message:

	if authsdk.IsStatus(err, http.StatusUnauthorized) {
		// bad credentials
	}
*/
package authsdk
