/*
Package authsdk provides a client SDK for the HireHub authentication service
and the helpers an application needs to receive users handed off by it.

# SDKClient vs Session

  - SDKClient: public account operations (register, login, verification,
    password reset) and health checks
  - Session: an authenticated caller with automatic token refresh

	client := authsdk.NewSDKClient("https://auth.example.com")

	reg, err := client.Register(ctx, authsdk.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret1",
		Role:     "job_seeker",
	})
	if err == nil && !reg.EmailSent {
		// The account exists but the code did not go out; offer a resend.
		_, err = client.ResendOTP(ctx, "alice@example.com")
	}

	_, err = client.VerifyEmail(ctx, "alice@example.com", "123456")

	session, err := client.AuthenticateWithPassword(ctx, "alice@example.com", "secret1")
	me, err := session.Me(ctx)

# Error Handling

Every error answered by the service is returned as an *APIError carrying the
HTTP status, the error code and, for validation failures, per-field details.
The predefined values compare with errors.Is:

	_, err := client.VerifyEmail(ctx, email, code)
	switch {
	case errors.Is(err, authsdk.ErrOTPExpired):
		// ask for a new code
	case errors.Is(err, authsdk.ErrInvalidOTP):
		// let the user retry
	}

Requests have a Validate method that applies the same field rules as the
service, so forms can be checked before a round trip.

# Hand-off

After login the service returns a redirect_url of the form

	https://jobs.example.com/?from=auth&token=<access token>

The receiving application installs HandoffMiddleware, which stores the token
(CookieTokenStore by default) and redirects to the same URL without the token
and from parameters:

	mux := http.NewServeMux()
	handler := authsdk.HandoffMiddleware(authsdk.CookieTokenStore{})(mux)

StripHandoff exposes the same parsing for applications that are not served
through net/http.

# Thread Safety

Sessions are safe for concurrent use. Multiple goroutines can share a single
Session; a refresh happens at most once per expiry.
*/
package authsdk
