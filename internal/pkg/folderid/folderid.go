// Package folderid builds the deterministic folder identifiers used across
// provisioning, lookup and cascade deletion. Every folder ID is a composite
// of a fixed prefix and the owning entity's ID, so a folder can be located
// without a secondary index. All construction lives here; callers must never
// concatenate folder IDs by hand.
package folderid

import (
	"strings"

	"github.com/google/uuid"
)

// Fixed client subfolder names, in provisioning order.
var ClientSubfolders = []string{
	"projects", "strategies", "videos", "photos",
	"documents", "deliverables", "meetings", "archive",
}

// Fixed project subfolder names, in provisioning order.
var ProjectSubfolders = []string{
	"tasks", "videos", "photos", "documents", "deliverables",
}

func ClientRoot(clientID uuid.UUID) string {
	return "client_" + clientID.String()
}

func ClientSub(clientID uuid.UUID, name string) string {
	return ClientRoot(clientID) + "_" + strings.ToLower(name)
}

func Project(projectID uuid.UUID) string {
	return "proj_" + projectID.String()
}

func ProjectSub(projectID uuid.UUID, name string) string {
	return Project(projectID) + "_" + strings.ToLower(name)
}

func ProjectArchive(projectID uuid.UUID) string {
	return Project(projectID) + "_archive"
}

func Task(taskID uuid.UUID) string {
	return "task_" + taskID.String()
}

func Meeting(meetingID uuid.UUID) string {
	return "meeting_" + meetingID.String()
}

// projectCategorySub maps a file category to the project subfolder name it
// lands in when no task folder applies.
var projectCategorySub = map[string]string{
	"video":        "videos",
	"image":        "photos",
	"document":     "documents",
	"design":       "documents",
	"presentation": "documents",
}

// clientCategorySub is the client-level equivalent. Presentations resolve to
// "strategies" here, not "documents": the two maps intentionally disagree.
var clientCategorySub = map[string]string{
	"video":        "videos",
	"image":        "photos",
	"document":     "documents",
	"design":       "documents",
	"presentation": "strategies",
}

// ProjectCategoryFolder returns the project subfolder ID for a file
// category, or "" when the category has no mapping.
func ProjectCategoryFolder(projectID uuid.UUID, category string) string {
	sub, ok := projectCategorySub[strings.ToLower(category)]
	if !ok {
		return ""
	}
	return ProjectSub(projectID, sub)
}

// ClientCategoryFolder returns the client subfolder ID for a file category,
// or "" when the category has no mapping.
func ClientCategoryFolder(clientID uuid.UUID, category string) string {
	sub, ok := clientCategorySub[strings.ToLower(category)]
	if !ok {
		return ""
	}
	return ClientSub(clientID, sub)
}

const maxFolderNameLen = 50

// SanitizeName reduces a free-form title to a safe folder display name:
// alphanumerics, spaces, hyphens and underscores only, truncated to 50
// characters.
func SanitizeName(title string) string {
	var sb strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			sb.WriteRune(r)
		}
	}
	name := sb.String()
	if len(name) > maxFolderNameLen {
		name = name[:maxFolderNameLen]
	}
	return strings.TrimSpace(name)
}
