package handlers

import (
	"crypto/sha1"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"
)

const (
	sessionName = "ocean-trends"
	spikeKKey   = "spike-k"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.
)

func newStore(secure bool) *sessions.CookieStore {
	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			getSessionKey(),
			getEncryptionKey(),
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   secure,
			HttpOnly: true,
		},
	}
	store.MaxAge(defaultMaxAge)
	return store
}

// spikeK picks the spike multiplier for a request: an explicit k parameter,
// which is then remembered, or the one remembered from before, or fallback.
// A malformed k is an error.
func spikeK(store sessions.Store, w http.ResponseWriter, r *http.Request, fallback float64) (float64, error) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		// A cookie signed with an old key; start over with a fresh session.
		log.Printf("[WARN] discarding session: %v", err)
	}

	if s := r.FormValue("k"); s != "" {
		k, err := strconv.ParseFloat(s, 64)
		if err != nil || k < 0 {
			return 0, &badRequest{param: "k", value: s}
		}
		session.Values[spikeKKey] = k
		if err := session.Save(r, w); err != nil {
			log.Printf("[WARN] save session: %v", err)
		}
		return k, nil
	}

	if k, ok := session.Values[spikeKKey].(float64); ok {
		return k, nil
	}
	return fallback, nil
}

// getSessionKey returns a key to sign session cookies defined in the
// environment.
// If it is not set, it uses a compile-time default.
func getSessionKey() []byte {
	defaultKey := []byte("deadbeef")
	if key := os.Getenv("SESSION_KEY"); key != "" {
		return []byte(key)
	} else {
		return defaultKey
	}
}

func getEncryptionKey() []byte {
	password := "deadbeef"
	if fromEnv := os.Getenv("ENCRYPTION_KEY"); fromEnv != "" {
		password = fromEnv
	}
	return pbkdf2.Key([]byte(password), []byte{}, 4096, 32, sha1.New)
}
