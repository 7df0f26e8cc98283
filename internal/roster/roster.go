// Package roster classifies players by role (starter, backup, committee
// member) from an injected reference dataset. The dataset is versionable
// configuration, not compiled-in lookup tables, so roster changes ship as
// data updates.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Role is a player's usage classification.
type Role int

const (
	RoleStarter Role = iota
	RoleBackupRB
	RoleBackupTE
	RoleCommittee
)

// String returns the display name of the role.
func (r Role) String() string {
	switch r {
	case RoleBackupRB:
		return "Backup RB"
	case RoleBackupTE:
		return "Backup TE"
	case RoleCommittee:
		return "Committee"
	default:
		return "Starter"
	}
}

// Classifier resolves a player name to a Role. Implementations are expected
// to be swappable per season.
type Classifier interface {
	Classify(name string) Role
}

// Data is the reference dataset behind a static classifier. Names are
// matched case-insensitively and exactly; this is a coarse name-based
// filter by design.
type Data struct {
	// BackupRBs maps a backup running back to the primary back ahead of him.
	BackupRBs map[string]string `json:"backup_rbs"`
	// BackupTEs lists low-usage tight ends.
	BackupTEs []string `json:"backup_tes"`
	// Committees maps a team to the backs sharing its backfield.
	Committees map[string][]string `json:"committees"`
	// Exclusions lists players removed from bet selection entirely
	// (backup QBs, low-snap TEs, WR3/WR4 with inconsistent targets).
	Exclusions []string `json:"exclusions"`
}

// LoadFile reads a roster dataset from a JSON file.
func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read roster file: %w", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("failed to parse roster file: %w", err)
	}

	return data, nil
}

// Static is a Classifier backed by a fixed Data snapshot.
type Static struct {
	backupRBs  map[string]struct{}
	backupTEs  map[string]struct{}
	committee  map[string]struct{}
	exclusions map[string]struct{}
}

// NewStatic builds a Static classifier from a dataset. All names are
// normalized to lower case once at construction.
func NewStatic(data Data) *Static {
	s := &Static{
		backupRBs:  make(map[string]struct{}, len(data.BackupRBs)),
		backupTEs:  make(map[string]struct{}, len(data.BackupTEs)),
		committee:  make(map[string]struct{}),
		exclusions: make(map[string]struct{}, len(data.Exclusions)),
	}

	for name := range data.BackupRBs {
		s.backupRBs[normalize(name)] = struct{}{}
	}
	for _, name := range data.BackupTEs {
		s.backupTEs[normalize(name)] = struct{}{}
	}
	for _, backs := range data.Committees {
		for _, name := range backs {
			s.committee[normalize(name)] = struct{}{}
		}
	}
	for _, name := range data.Exclusions {
		s.exclusions[normalize(name)] = struct{}{}
	}

	return s
}

// Classify returns the role for a player. Unknown players default to
// starter treatment; the degraded-confidence condition is logged, never
// fatal.
func (s *Static) Classify(name string) Role {
	key := normalize(name)

	if _, ok := s.backupRBs[key]; ok {
		return RoleBackupRB
	}
	if _, ok := s.backupTEs[key]; ok {
		return RoleBackupTE
	}
	if _, ok := s.committee[key]; ok {
		return RoleCommittee
	}

	log.Debug().Str("player", name).Msg("Player not in roster data, treating as starter")
	return RoleStarter
}

// IsBackup reports whether a player is a known backup RB or TE.
func (s *Static) IsBackup(name string) bool {
	key := normalize(name)
	if _, ok := s.backupRBs[key]; ok {
		return true
	}
	_, ok := s.backupTEs[key]
	return ok
}

// Excluded reports whether a player is on the low-usage exclusion list.
func (s *Static) Excluded(name string) bool {
	_, ok := s.exclusions[normalize(name)]
	return ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
