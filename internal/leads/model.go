package leads

import "time"

// Lead is one loan application. Data is the open form-field map posted by
// the lead form; the server only interprets data.loanStage, data.loanAmount
// and data.loanType for summaries. Hierarchy identifiers are set at creation
// and never altered afterwards.
type Lead struct {
	ID          string                 `bson:"_id,omitempty" json:"id"`
	LoanID      string                 `bson:"loan_id" json:"loan_id"`
	CreatedBy   string                 `bson:"created_by" json:"created_by"`
	ManagerID   string                 `bson:"manager_id,omitempty" json:"manager_id,omitempty"`
	EmployeeID  string                 `bson:"employee_id,omitempty" json:"employee_id,omitempty"`
	CreatorRole string                 `bson:"creator_role" json:"creator_role"`
	Data        map[string]interface{} `bson:"data" json:"data"`
	CreatedAt   time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt" json:"updatedAt"`
}

type CreateInput struct {
	UserID string
	Role   string
	Data   map[string]interface{}
}

// ListQuery scopes a listing to what the requesting user may see.
// ViewUser is only honored for admins.
type ListQuery struct {
	UserID   string
	Role     string
	ViewUser string
}
