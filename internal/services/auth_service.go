// auth_service.go
//
// Domain services behind the notes feed
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notesdb.
// notesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	authorizer "github.com/localnerve/authorizer-go"
	"github.com/localnerve/notesdb/internal/config"
	"github.com/localnerve/notesdb/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// NewValidator picks the session validator for AUTH_PROVIDER
func NewValidator(ctx context.Context, cfg *config.Config, log *zap.Logger) (SessionValidator, error) {
	switch cfg.AuthProvider {
	case "firebase":
		return NewFirebaseValidator(ctx, cfg.FirestoreProjectID, cfg.FirebaseCredentialsFile)
	case "authorizer":
		return NewAuthorizerValidator(cfg, log), nil
	}
	return nil, fmt.Errorf("unsupported auth provider: %s", cfg.AuthProvider)
}

// AuthorizerValidator validates the cookie_session cookie with an Authorizer
// server. The client is created on the first request, when the public
// protocol and host are known.
type AuthorizerValidator struct {
	cfg    *config.Config
	log    *zap.Logger
	mu     sync.Mutex
	client *authorizer.AuthorizerClient
}

// NewAuthorizerValidator creates a lazily initialized validator
func NewAuthorizerValidator(cfg *config.Config, log *zap.Logger) *AuthorizerValidator {
	return &AuthorizerValidator{cfg: cfg, log: log}
}

// Initialized reports whether the Authorizer client exists
func (v *AuthorizerValidator) Initialized() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.client != nil
}

func (v *AuthorizerValidator) authClient(protocol, host string) (*authorizer.AuthorizerClient, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.client != nil {
		return v.client, nil
	}

	// Ping the Authorizer service first
	if err := utils.PingAuthorizer(v.cfg.AuthzURL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	redirectURL := fmt.Sprintf("%s://%s", protocol, host)
	v.log.Info("initializing authorizer",
		zap.String("authorizerURL", v.cfg.AuthzURL),
		zap.String("clientID", v.cfg.AuthzClientID),
		zap.String("redirectURL", redirectURL))

	client, err := authorizer.NewAuthorizerClient(v.cfg.AuthzClientID, v.cfg.AuthzURL, redirectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	v.client = client
	return client, nil
}

// Validate checks the session cookie
func (v *AuthorizerValidator) Validate(ctx context.Context, creds Credentials) (*Identity, error) {
	if creds.Cookie == "" {
		return nil, ErrUnauthenticated
	}
	client, err := v.authClient(creds.Protocol, creds.Host)
	if err != nil {
		return nil, err
	}

	res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: creds.Cookie,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: session validation failed: %v", ErrUnauthenticated, err)
	}
	if res == nil || !res.IsValid {
		return nil, fmt.Errorf("%w: session is not valid", ErrUnauthenticated)
	}
	return identityFromAuthorizer(res.User)
}

// authorizerUser is the subset of the Authorizer user we mirror
type authorizerUser struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	GivenName  *string `json:"given_name"`
	FamilyName *string `json:"family_name"`
	Nickname   *string `json:"nickname"`
	Picture    *string `json:"picture"`
}

func identityFromAuthorizer(user interface{}) (*Identity, error) {
	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("unreadable authorizer user: %w", err)
	}
	var u authorizerUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("unreadable authorizer user: %w", err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: session has no user", ErrUnauthenticated)
	}

	name := strings.TrimSpace(deref(u.GivenName) + " " + deref(u.FamilyName))
	if name == "" {
		name = deref(u.Nickname)
	}
	return &Identity{
		UID:         u.ID,
		DisplayName: displayName(name, u.Email),
		Email:       u.Email,
		PhotoURL:    deref(u.Picture),
	}, nil
}

// tokenVerifier is the part of the Firebase auth client we use
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseValidator verifies Firebase ID tokens sent as bearer tokens
type FirebaseValidator struct {
	client tokenVerifier
}

// NewFirebaseValidator creates the Firebase auth client for projectID
func NewFirebaseValidator(ctx context.Context, projectID, credentialsFile string) (*FirebaseValidator, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase auth client: %w", err)
	}
	return &FirebaseValidator{client: client}, nil
}

// Validate verifies the bearer token
func (v *FirebaseValidator) Validate(ctx context.Context, creds Credentials) (*Identity, error) {
	if creds.BearerToken == "" {
		return nil, ErrUnauthenticated
	}
	token, err := v.client.VerifyIDToken(ctx, creds.BearerToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return identityFromClaims(token.UID, token.Claims), nil
}

func identityFromClaims(uid string, claims map[string]interface{}) *Identity {
	claim := func(key string) string {
		s, _ := claims[key].(string)
		return s
	}
	email := claim("email")
	return &Identity{
		UID:         uid,
		DisplayName: displayName(claim("name"), email),
		Email:       email,
		PhotoURL:    claim("picture"),
	}
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return "Student"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
