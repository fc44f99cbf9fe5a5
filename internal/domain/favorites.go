package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FavoritesStorageKey is the session storage key holding favorite product names.
const FavoritesStorageKey = "userFavorites"

var ErrInvalidFavorite = errors.New("favorite requires a product name")

// Favorites is the list of product names a session has marked
type Favorites struct {
	Names []string
}

// Contains reports whether the product name is a favorite
func (f *Favorites) Contains(name string) bool {
	for _, n := range f.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Toggle flips the favorite state of the product name and returns the new state.
func (f *Favorites) Toggle(name string) bool {
	if f.Contains(name) {
		kept := f.Names[:0]
		for _, n := range f.Names {
			if n != name {
				kept = append(kept, n)
			}
		}
		f.Names = kept
		return false
	}
	f.Names = append(f.Names, name)
	return true
}

// Encode serializes the favorites as a JSON array of names
func (f *Favorites) Encode() ([]byte, error) {
	names := f.Names
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// DecodeFavorites parses stored favorites. Malformed content yields an
// empty list and the parse error. Non-string entries and duplicates are dropped.
func DecodeFavorites(raw []byte) (*Favorites, error) {
	favs := &Favorites{Names: []string{}}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return favs, nil
	}

	var entries []any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return favs, fmt.Errorf("decoding favorites: %w", err)
	}
	for _, entry := range entries {
		name, ok := entry.(string)
		if !ok || name == "" || favs.Contains(name) {
			continue
		}
		favs.Names = append(favs.Names, name)
	}
	return favs, nil
}
