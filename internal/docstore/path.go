package docstore

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func Join(segments ...string) string {
	return strings.Join(segments, "/")
}

func split(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func validSegments(segs []string) bool {
	for _, s := range segs {
		if s == "" || s == "." || s == ".." {
			return false
		}
	}
	return true
}

func ValidateDocPath(p string) error {
	segs := split(p)
	if len(segs) < 2 || len(segs)%2 != 0 || !validSegments(segs) {
		return fmt.Errorf("%w: %q is not a document path", ErrInvalidPath, p)
	}
	return nil
}

func ValidateCollectionPath(p string) error {
	segs := split(p)
	if len(segs)%2 != 1 || !validSegments(segs) {
		return fmt.Errorf("%w: %q is not a collection path", ErrInvalidPath, p)
	}
	return nil
}

// Parent returns the collection containing a document, or the document
// containing a collection.
func Parent(p string) string {
	p = strings.Trim(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return ""
}

// Base returns the last segment of p.
func Base(p string) string {
	p = strings.Trim(p, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// UserDoc is the root document of a user's namespace.
func UserDoc(uid string) string { return Join("users", uid) }

// NewID returns a fresh document id.
func NewID() string { return uuid.NewString() }
