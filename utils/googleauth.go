package utils

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/idtoken"
)

// GoogleUser is the identity extracted from a verified Google ID token.
type GoogleUser struct {
	Name  string
	Email string
}

// VerifyGoogleToken validates the ID token against GOOGLE_CLIENT_ID and
// returns the holder's identity. Package variable so tests can stub the
// verifier.
var VerifyGoogleToken = verifyGoogleToken

func verifyGoogleToken(ctx context.Context, token string) (*GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, token, os.Getenv("GOOGLE_CLIENT_ID"))
	if err != nil {
		return nil, err
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		return nil, fmt.Errorf("google token has no email claim")
	}
	return &GoogleUser{Name: name, Email: email}, nil
}
