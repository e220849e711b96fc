package auth

import (
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

const ProviderGoogle = "google"

// InitOAuthProviders registers the Google provider. It reports whether OAuth login is enabled.
func InitOAuthProviders(callbackBaseURL, sessionSecret, googleClientID, googleClientSecret string, secureCookie bool) bool {
	if googleClientID == "" || googleClientSecret == "" {
		return false
	}

	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.Options.HttpOnly = true
	store.Options.Secure = secureCookie
	gothic.Store = store

	goth.UseProviders(
		google.New(googleClientID, googleClientSecret, callbackBaseURL+"/auth/google/callback", "email", "profile"),
	)
	return true
}
