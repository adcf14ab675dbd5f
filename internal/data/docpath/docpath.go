// Package docpath names every document and collection in a user's
// namespace.
package docpath

import (
	"strings"

	"github.com/Dee1911/Aspire.can/internal/docstore"
	"github.com/Dee1911/Aspire.can/internal/platform/validate"
)

const (
	storyCollection        = "storyBuilder"
	storyDocID             = "data"
	deadlinesCollection    = "deadlines"
	applicationsCollection = "applications"
	TasksCollection        = "tasks"
	NotesCollection        = "notes"
	NotesDocID             = "content"
)

// Segment rejects ids that would escape their path position.
func Segment(field, id string) error {
	switch {
	case strings.TrimSpace(id) == "":
		return validate.Field(field, field+" is required")
	case strings.ContainsAny(id, "/"), id == ".", id == "..":
		return validate.Field(field, field+" contains invalid characters")
	}
	return nil
}

func Profile(uid string) string { return docstore.UserDoc(uid) }
func Story(uid string) string { return docstore.Join(docstore.UserDoc(uid), storyCollection, storyDocID) }
func Deadlines(uid string) string { return docstore.Join(docstore.UserDoc(uid), deadlinesCollection) }
func Deadline(uid, id string) string { return docstore.Join(Deadlines(uid), id) }
func Applications(uid string) string { return docstore.Join(docstore.UserDoc(uid), applicationsCollection) }

func Application(uid, appID string) string { return docstore.Join(Applications(uid), appID) }
func Tasks(uid, appID string) string { return docstore.Join(Application(uid, appID), TasksCollection) }
func Task(uid, appID, taskID string) string {
	return docstore.Join(Tasks(uid, appID), taskID)
}
func Notes(uid, appID string) string { return docstore.Join(Application(uid, appID), NotesCollection) }
func NotesDoc(uid, appID string) string { return docstore.Join(Notes(uid, appID), NotesDocID) }

// ApplicationsPrefix scopes collection-group queries to one user's
// applications.
func ApplicationsPrefix(uid string) string { return Applications(uid) + "/" }

// OwningApplication returns the application id that owns a task or notes
// document path.
func OwningApplication(subDocPath string) string {
	return docstore.Base(docstore.Parent(docstore.Parent(subDocPath)))
}
