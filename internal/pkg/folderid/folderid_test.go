package folderid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCompositeIDs(t *testing.T) {
	clientID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	projectID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	taskID := uuid.MustParse("33333333-3333-3333-3333-333333333333")

	assert.Equal(t, "client_"+clientID.String(), ClientRoot(clientID))
	assert.Equal(t, "client_"+clientID.String()+"_projects", ClientSub(clientID, "Projects"))
	assert.Equal(t, "proj_"+projectID.String(), Project(projectID))
	assert.Equal(t, "proj_"+projectID.String()+"_tasks", ProjectSub(projectID, "tasks"))
	assert.Equal(t, "proj_"+projectID.String()+"_archive", ProjectArchive(projectID))
	assert.Equal(t, "task_"+taskID.String(), Task(taskID))
}

func TestCompositeIDsAreDeterministic(t *testing.T) {
	clientID := uuid.New()
	assert.Equal(t, ClientRoot(clientID), ClientRoot(clientID))
	assert.Equal(t, ClientSub(clientID, "videos"), ClientSub(clientID, "VIDEOS"))
}

func TestCategoryFolderMapping(t *testing.T) {
	clientID := uuid.New()
	projectID := uuid.New()

	tests := []struct {
		category   string
		projectSub string
		clientSub  string
	}{
		{"video", "videos", "videos"},
		{"image", "photos", "photos"},
		{"document", "documents", "documents"},
		{"design", "documents", "documents"},
		// presentations diverge between the two levels
		{"presentation", "documents", "strategies"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, ProjectSub(projectID, tt.projectSub), ProjectCategoryFolder(projectID, tt.category))
			assert.Equal(t, ClientSub(clientID, tt.clientSub), ClientCategoryFolder(clientID, tt.category))
		})
	}
}

func TestCategoryFolderUnknownCategory(t *testing.T) {
	assert.Equal(t, "", ProjectCategoryFolder(uuid.New(), "audio"))
	assert.Equal(t, "", ClientCategoryFolder(uuid.New(), "audio"))
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  string
	}{
		{"plain", "Write Brief", "Write Brief"},
		{"strips punctuation", "Q3 Launch: phase #1 (final!)", "Q3 Launch phase 1 final"},
		{"keeps hyphen underscore", "a-b_c", "a-b_c"},
		{"truncates", strings.Repeat("x", 80), strings.Repeat("x", 50)},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeName(tt.in))
		})
	}
}
