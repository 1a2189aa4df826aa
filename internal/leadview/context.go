package leadview

import (
	"errors"
	"net/url"

	"github.com/Tharun-codes/wheelswebb/internal/auth"
	"github.com/Tharun-codes/wheelswebb/internal/models"
)

var ErrUnauthenticated = errors.New("no authenticated session")

type ScopeMode int

const (
	// ScopeSelf shows the acting user their own visibility set.
	ScopeSelf ScopeMode = iota
	// ScopeAdminViewOther is an admin inspecting another user's leads. The
	// admin keeps the admin role; only the visibility target changes.
	ScopeAdminViewOther
	// ScopeDealerSubset is an employee looking at leads sourced from their
	// dealers, i.e. everything in their set they did not create themselves.
	ScopeDealerSubset
)

func (m ScopeMode) String() string {
	switch m {
	case ScopeAdminViewOther:
		return "admin_view_other"
	case ScopeDealerSubset:
		return "dealer_subset"
	default:
		return "self"
	}
}

// ViewContext is computed once per page view and passed down; all role and
// scope branching downstream keys off Scope rather than raw role strings.
type ViewContext struct {
	ActingUserID string
	ActingRole   string
	Scope        ScopeMode
	ScopeTarget  string
	Heading      string
}

// Resolve derives the view context from the session claims and the
// navigation parameters (userId, username, role, dealerView).
func Resolve(claims *auth.Claims, params url.Values) (ViewContext, error) {
	if claims == nil || claims.UserID == "" {
		return ViewContext{}, ErrUnauthenticated
	}

	vc := ViewContext{
		ActingUserID: claims.UserID,
		ActingRole:   claims.Role,
		Scope:        ScopeSelf,
	}

	targetUserID := params.Get("userId")
	targetUsername := params.Get("username")
	targetRole := params.Get("role")
	dealerView := params.Get("dealerView")

	switch {
	case claims.Role == models.RoleAdmin && targetUserID != "":
		vc.Scope = ScopeAdminViewOther
		vc.ScopeTarget = targetUserID
		if targetRole == models.RoleEmployee && targetUsername != "" {
			vc.Heading = "Leads created by: " + targetUsername
		}
	case claims.Role == models.RoleEmployee && dealerView == "1":
		vc.Scope = ScopeDealerSubset
		vc.Heading = "Dealer Leads (Your Dealers)"
	}

	return vc, nil
}
