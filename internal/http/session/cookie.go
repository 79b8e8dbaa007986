package session

import (
	"net/http"
)

// cookieStorage is the client storage of one HTTP caller: the session keys
// travel as cookies, so every client carries its own sign-in.
type cookieStorage struct {
	w      http.ResponseWriter
	values map[string]string
}

func newCookieStorage(w http.ResponseWriter, r *http.Request) *cookieStorage {
	s := &cookieStorage{w: w, values: map[string]string{}}

	for _, c := range r.Cookies() {
		s.values[c.Name] = c.Value
	}

	return s
}

func (s *cookieStorage) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *cookieStorage) Set(key, value string) error {
	s.values[key] = value
	http.SetCookie(s.w, sessionCookie(key, value, 0))

	return nil
}

func (s *cookieStorage) Remove(key string) error {
	delete(s.values, key)
	http.SetCookie(s.w, sessionCookie(key, "", -1))

	return nil
}

func sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
