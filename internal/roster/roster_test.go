package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() Data {
	return Data{
		BackupRBs:  map[string]string{"Tyler Allgeier": "Bijan Robinson"},
		BackupTEs:  []string{"Durham Smythe"},
		Committees: map[string][]string{"rams": {"Kyren Williams", "Blake Corum"}},
		Exclusions: []string{"Jimmy Garoppolo", "Backup QB"},
	}
}

func TestStatic_Classify(t *testing.T) {
	s := NewStatic(sampleData())

	assert.Equal(t, RoleBackupRB, s.Classify("Tyler Allgeier"))
	assert.Equal(t, RoleBackupTE, s.Classify("Durham Smythe"))
	assert.Equal(t, RoleCommittee, s.Classify("Kyren Williams"))
	assert.Equal(t, RoleCommittee, s.Classify("Blake Corum"))
	assert.Equal(t, RoleStarter, s.Classify("Patrick Mahomes"), "Unknown players default to starter")
}

func TestStatic_CaseInsensitiveExactMatch(t *testing.T) {
	s := NewStatic(sampleData())

	assert.Equal(t, RoleBackupRB, s.Classify("TYLER ALLGEIER"))
	assert.Equal(t, RoleBackupRB, s.Classify("  tyler allgeier  "))
	assert.Equal(t, RoleStarter, s.Classify("Tyler"), "Partial names never match")
}

func TestStatic_IsBackup(t *testing.T) {
	s := NewStatic(sampleData())

	assert.True(t, s.IsBackup("Tyler Allgeier"))
	assert.True(t, s.IsBackup("durham smythe"))
	assert.False(t, s.IsBackup("Kyren Williams"), "Committee backs are not backups")
	assert.False(t, s.IsBackup("Patrick Mahomes"))
}

func TestStatic_Excluded(t *testing.T) {
	s := NewStatic(sampleData())

	assert.True(t, s.Excluded("Jimmy Garoppolo"))
	assert.True(t, s.Excluded("JIMMY GAROPPOLO"))
	assert.False(t, s.Excluded("Tyler Allgeier"), "Backups are penalized, not excluded")
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "Starter", RoleStarter.String())
	assert.Equal(t, "Backup RB", RoleBackupRB.String())
	assert.Equal(t, "Backup TE", RoleBackupTE.String())
	assert.Equal(t, "Committee", RoleCommittee.String())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	raw := `{
		"backup_rbs": {"Tyler Allgeier": "Bijan Robinson"},
		"backup_tes": ["Durham Smythe"],
		"committees": {"rams": ["Kyren Williams"]},
		"exclusions": ["Jimmy Garoppolo"]
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	data, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Bijan Robinson", data.BackupRBs["Tyler Allgeier"])
	assert.Equal(t, []string{"Durham Smythe"}, data.BackupTEs)
	assert.Equal(t, []string{"Jimmy Garoppolo"}, data.Exclusions)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestDefault_Coherent(t *testing.T) {
	s := NewStatic(Default())

	// Spot checks against the shipped dataset
	assert.NotEmpty(t, Default().BackupRBs)
	assert.NotEmpty(t, Default().Exclusions)

	for name := range Default().BackupRBs {
		assert.Equal(t, RoleBackupRB, s.Classify(name), name)
	}
	for _, name := range Default().Exclusions {
		assert.True(t, s.Excluded(name), name)
	}
}
