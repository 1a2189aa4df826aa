package leadview

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/Tharun-codes/wheelswebb/internal/models"
)

// FilterState holds the active table filters. Empty fields are no-ops.
type FilterState struct {
	Role   string
	User   string
	Stage  string
	Search string
}

func (f FilterState) Empty() bool {
	return f.Role == "" && f.User == "" && f.Stage == "" && f.Search == ""
}

// Apply filters leads in place of the original table logic: dealer-subset
// pre-filter, then user filter (the role-specific rule replaces the generic
// hierarchy check when both are set), then role-only filter, then stage,
// then free-text search. Input order is preserved and the input slice is
// never mutated.
func Apply(leads []Lead, vc ViewContext, f FilterState) []Lead {
	out := make([]Lead, 0, len(leads))
	search := strings.ToLower(strings.TrimSpace(f.Search))

	for _, l := range leads {
		if vc.Scope == ScopeDealerSubset && idEquals(l.CreatedBy, vc.ActingUserID) {
			continue
		}
		if !matchesUserAndRole(l, f) {
			continue
		}
		if f.Stage != "" && l.Stage() != f.Stage {
			continue
		}
		if search != "" && !matchesSearch(l, search) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesUserAndRole(l Lead, f FilterState) bool {
	if f.User == "" {
		// Role-only filter matches on the creator's role.
		if f.Role != "" && l.CreatorRole != f.Role {
			return false
		}
		return true
	}

	switch f.Role {
	case models.RoleManager:
		// Manager's own leads plus everything created under them.
		return idEquals(l.CreatedBy, f.User) || idEquals(l.ManagerID, f.User)
	case models.RoleEmployee:
		return idEquals(l.CreatedBy, f.User) || idEquals(l.EmployeeID, f.User)
	case models.RoleDealer:
		return idEquals(l.CreatedBy, f.User)
	default:
		// No role narrowing: hierarchy-inclusive match.
		return idEquals(l.CreatedBy, f.User) ||
			idEquals(l.ManagerID, f.User) ||
			idEquals(l.EmployeeID, f.User)
	}
}

// matchesSearch checks the lowercased JSON serialization of the whole record
// for the term, so any field, nested or not, is searchable.
func matchesSearch(l Lead, lowered string) bool {
	raw, err := json.Marshal(l)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(raw)), lowered)
}

// Stages collects the distinct, sorted loan stages for the stage dropdown.
func Stages(leads []Lead) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, l := range leads {
		stage := l.Stage()
		if stage == "" || seen[stage] {
			continue
		}
		seen[stage] = true
		out = append(out, stage)
	}
	sort.Strings(out)
	return out
}
