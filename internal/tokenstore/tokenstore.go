// Package tokenstore persists the single bearer token the client owns.
package tokenstore

import "errors"

var ErrNotFound = errors.New("token not found")

type Store interface {
	Get() (string, error)
	Set(token string) error
	Remove() error
}

// Token returns the stored token or "" when none is persisted or the store fails.
func Token(s Store) string {
	if s == nil {
		return ""
	}
	token, err := s.Get()
	if err != nil {
		return ""
	}
	return token
}
