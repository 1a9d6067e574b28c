package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adgenlab/adgen/internal/api"
)

// AuthCmd groups authentication commands.
type AuthCmd struct {
	Login    AuthLoginCmd    `cmd:"" help:"Log in with email and password"`
	Register AuthRegisterCmd `cmd:"" help:"Create a new account"`
	Logout   AuthLogoutCmd   `cmd:"" help:"Log out and clear the saved session"`
	Status   AuthStatusCmd   `cmd:"" help:"Show the current session"`
}

// AuthLoginCmd exchanges credentials for a token pair and persists the
// session.
type AuthLoginCmd struct {
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password" required:"" env:"ADGEN_PASSWORD"`
}

func (c *AuthLoginCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := openSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	pair, err := client.Login(ctx, c.Email, c.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// The login response may omit the profile; fetch it with the fresh
	// token before anything is persisted, so the session is established
	// atomically with both token and profile.
	user := pair.User
	if user == nil {
		meClient, err := newClient(globals, store, api.StaticToken(pair.AccessToken))
		if err != nil {
			return err
		}
		user, err = meClient.Me(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}
	}

	if err := store.Establish(pair.AccessToken, pair.RefreshToken, *user); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Email)
	return nil
}

// AuthRegisterCmd creates a new account. Log in separately afterwards.
type AuthRegisterCmd struct {
	Username     string `help:"Display name" required:""`
	Email        string `help:"Account email" required:""`
	Password     string `help:"Account password" required:"" env:"ADGEN_PASSWORD"`
	BusinessType string `help:"Business classification (restaurant, clothing, service, beauty, education, medical, retail, etc)" default:"etc"`
}

func (c *AuthRegisterCmd) Run(ctx context.Context, globals *Globals) error {
	store, _, err := openSession(globals)
	if err != nil {
		return err
	}

	client, err := sessionClient(globals, store)
	if err != nil {
		return err
	}

	err = client.Register(ctx, api.RegisterRequest{
		Username:     c.Username,
		Email:        c.Email,
		Password:     c.Password,
		BusinessType: c.BusinessType,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Account created for %s\n", c.Email)
	fmt.Println("Run 'adgen-cli auth login' to sign in.")
	return nil
}

// AuthLogoutCmd clears the saved session. Safe to run when already logged
// out.
type AuthLogoutCmd struct{}

func (c *AuthLogoutCmd) Run(ctx context.Context, globals *Globals) error {
	store, sess, err := openSession(globals)
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	if sess == nil {
		fmt.Println("Not logged in.")
	} else {
		fmt.Println("Logged out.")
	}
	return nil
}

// AuthStatusCmd prints the current session, including the access token's
// expiry read from its claims.
type AuthStatusCmd struct{}

func (c *AuthStatusCmd) Run(ctx context.Context, globals *Globals) error {
	_, sess, err := openSession(globals)
	if err != nil {
		return err
	}

	if sess == nil {
		fmt.Println("Not logged in.")
		fmt.Println()
		fmt.Println("Run 'adgen-cli auth login' to sign in.")
		return nil
	}

	user := sess.User
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Email)
	fmt.Printf("Business type: %s\n", user.BusinessType)
	fmt.Printf("Verified: %t  Active: %t\n", user.IsVerified, user.IsActive)

	if expiry, ok := tokenExpiry(sess.AccessToken); ok {
		if time.Now().After(expiry) {
			fmt.Printf("Access token expired at %s; the next API call will require a new login.\n",
				expiry.Format(time.RFC3339))
		} else {
			fmt.Printf("Access token valid until %s\n", expiry.Format(time.RFC3339))
		}
	}

	return nil
}

// tokenExpiry reads the exp claim from the access token without verifying
// the signature. Display only; the backend is the authority on validity.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}
