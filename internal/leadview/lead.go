// Package leadview implements the cases list: role-scoped lead fetching,
// in-memory filtering, pagination and row projection for the dashboard table.
package leadview

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Lead mirrors the wire shape of the leads API. Hierarchy identifiers are
// kept untyped because different endpoints emit them as strings or numbers;
// all comparisons go through idEquals.
type Lead struct {
	LoanID      string                 `json:"loan_id"`
	CreatedBy   interface{}            `json:"created_by"`
	ManagerID   interface{}            `json:"manager_id,omitempty"`
	EmployeeID  interface{}            `json:"employee_id,omitempty"`
	CreatorRole string                 `json:"creator_role"`
	Data        map[string]interface{} `json:"data"`
	CreatedAt   string                 `json:"createdAt,omitempty"`
	UpdatedAt   string                 `json:"updatedAt,omitempty"`
}

// UserRef identifies a user in the role/user filter dropdowns.
type UserRef struct {
	ID       interface{} `json:"id"`
	Username string      `json:"username"`
	Role     string      `json:"role"`
}

// Stage returns data.loanStage, the free-text pipeline status.
func (l Lead) Stage() string {
	return l.field("loanStage")
}

func (l Lead) field(key string) string {
	if l.Data == nil {
		return ""
	}
	v, ok := l.Data[key]
	if !ok || v == nil {
		return ""
	}
	return coerceString(v)
}

// idEquals compares two identifiers the way the API's mixed payloads demand:
// "7" equals 7 equals 7.0.
func idEquals(a, b interface{}) bool {
	sa := coerceString(a)
	sb := coerceString(b)
	if sa == "" || sb == "" {
		return false
	}
	return sa == sb
}

func coerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return strings.Trim(string(raw), `"`)
	}
}
