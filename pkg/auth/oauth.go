package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"storefront.dev/shop/pkg/models"
)

const (
	ProviderGoogle = "google"
	ProviderGitHub = "github"
)

// Provider is an OAuth identity provider.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	Identify(ctx context.Context, code string) (*models.OAuthIdentity, error)
}

// NewProviders builds the providers whose credentials are configured. A
// provider without a client id and secret is left out.
func NewProviders(callbackBase, googleID, googleSecret, githubID, githubSecret string) map[string]Provider {
	providers := make(map[string]Provider)
	if googleID != "" && googleSecret != "" {
		providers[ProviderGoogle] = &googleProvider{config: &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  callbackBase + "/api/auth/google/callback",
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		}}
	}
	if githubID != "" && githubSecret != "" {
		providers[ProviderGitHub] = &githubProvider{config: &oauth2.Config{
			ClientID:     githubID,
			ClientSecret: githubSecret,
			RedirectURL:  callbackBase + "/api/auth/github/callback",
			Scopes:       []string{"user:email"},
			Endpoint:     github.Endpoint,
		}}
	}
	return providers
}

type googleProvider struct {
	config *oauth2.Config
}

func (p *googleProvider) Name() string { return ProviderGoogle }

func (p *googleProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *googleProvider) Identify(ctx context.Context, code string) (*models.OAuthIdentity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google code exchange: %w", err)
	}

	var profile struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := getJSON(ctx, p.config.Client(ctx, token), "https://www.googleapis.com/oauth2/v2/userinfo", &profile); err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}

	return &models.OAuthIdentity{
		Provider:   ProviderGoogle,
		ProviderID: profile.ID,
		Email:      profile.Email,
		Name:       profile.Name,
	}, nil
}

type githubProvider struct {
	config *oauth2.Config
}

func (p *githubProvider) Name() string { return ProviderGitHub }

func (p *githubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *githubProvider) Identify(ctx context.Context, code string) (*models.OAuthIdentity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("github code exchange: %w", err)
	}
	client := p.config.Client(ctx, token)

	var profile struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := getJSON(ctx, client, "https://api.github.com/user", &profile); err != nil {
		return nil, err
	}

	email := profile.Email
	if email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		// Private emails are only listed here; failure falls back below.
		if err := getJSON(ctx, client, "https://api.github.com/user/emails", &emails); err == nil {
			for _, e := range emails {
				if e.Primary && e.Verified {
					email = e.Email
					break
				}
			}
		}
	}

	return &models.OAuthIdentity{
		Provider:   ProviderGitHub,
		ProviderID: strconv.FormatInt(profile.ID, 10),
		Email:      email,
		Name:       profile.Name,
		Username:   profile.Login,
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
