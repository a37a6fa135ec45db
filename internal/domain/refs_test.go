package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRefUnmarshalBareID(t *testing.T) {
	var ref ProjectRef
	require.NoError(t, json.Unmarshal([]byte(`"p1"`), &ref))

	assert.Equal(t, "p1", ref.ID)
	assert.Empty(t, ref.Name)
	assert.True(t, ref.Is("p1"))
}

func TestProjectRefUnmarshalObject(t *testing.T) {
	var ref ProjectRef
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","name":"Apollo","owner":"u1"}`), &ref))

	assert.Equal(t, "p1", ref.ID)
	assert.Equal(t, "Apollo", ref.Name)
	assert.Equal(t, "u1", ref.OwnerID)
}

func TestProjectRefBareAndPopulatedCompareEqual(t *testing.T) {
	bare := ProjectRef{ID: "p1"}
	populated := ProjectRef{ID: "p1", Name: "Apollo", OwnerID: "u1"}

	assert.True(t, bare.Is("p1"))
	assert.True(t, populated.Is("p1"))
	assert.False(t, bare.Is("p2"))
	assert.False(t, ProjectRef{}.Is(""))
}

func TestUserRefUnmarshal(t *testing.T) {
	var bare UserRef
	require.NoError(t, json.Unmarshal([]byte(`"u1"`), &bare))
	assert.Equal(t, "u1", bare.ID)

	var populated UserRef
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u1","name":"Dev One","role":"developer"}`), &populated))
	assert.Equal(t, "u1", populated.ID)
	assert.Equal(t, RoleDeveloper, populated.Role)

	assert.True(t, bare.Is(populated.ID))
}

func TestIssueUnmarshalMixedRefShapes(t *testing.T) {
	payload := `{
		"id": "i1",
		"title": "login broken",
		"severity": "high",
		"status": "open",
		"project": "p1",
		"assignedTo": {"id": "dev-1", "name": "Dev One"},
		"createdBy": "qa-1"
	}`

	var issue Issue
	require.NoError(t, json.Unmarshal([]byte(payload), &issue))

	assert.True(t, issue.Project.Is("p1"))
	require.NotNil(t, issue.AssignedTo)
	assert.True(t, issue.AssignedTo.Is("dev-1"))
	assert.True(t, issue.CreatedBy.Is("qa-1"))
	assert.True(t, issue.Assigned())
}
