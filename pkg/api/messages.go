package api

// Amounts are decimal strings with two places ("100.00"); timestamps are
// Unix seconds, with 0 meaning unset.

type Invoice struct {
	ID          string `json:"id"`
	PropertyID  string `json:"property_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
	IssueDate   int64  `json:"issue_date"`
	DueDate     int64  `json:"due_date"`
	Paid        bool   `json:"paid"`
	PaidAt      int64  `json:"paid_at,omitempty"`
	Recurring   bool   `json:"recurring"`
	Frequency   string `json:"frequency,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
	CreatedAt   int64  `json:"created_at"`

	// Derived at read time from the splits.
	Status            string   `json:"status"`
	PaidAmount        string   `json:"paid_amount"`
	OutstandingAmount string   `json:"outstanding_amount"`
	FullySettled      bool     `json:"fully_settled"`
	Splits            []*Split `json:"splits"`
}

type Split struct {
	ID         string `json:"id"`
	InvoiceID  string `json:"invoice_id"`
	ResidentID string `json:"resident_id"`
	Amount     string `json:"amount"`
	Paid       bool   `json:"paid"`
	PaidAt     int64  `json:"paid_at,omitempty"`
	Status     string `json:"status"`
}

// ResidentSplit is a split listed for its resident, with the parent
// invoice's display fields.
type ResidentSplit struct {
	Split        *Split `json:"split"`
	PropertyID   string `json:"property_id"`
	InvoiceTitle string `json:"invoice_title"`
	DueDate      int64  `json:"due_date"`
}

type Share struct {
	ResidentID string `json:"resident_id"`
	Amount     string `json:"amount"`
}

type PreviewSplitRequest struct {
	Amount      string            `json:"amount"`
	ResidentIDs []string          `json:"resident_ids"`
	Strategy    string            `json:"strategy"`
	Percentages map[string]string `json:"percentages,omitempty"`
}

type PreviewSplitResponse struct {
	Shares []*Share `json:"shares"`
}

type CreateInvoiceRequest struct {
	PropertyID  string            `json:"property_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Amount      string            `json:"amount"`
	IssueDate   int64             `json:"issue_date,omitempty"`
	DueDate     int64             `json:"due_date"`
	Recurring   bool              `json:"recurring"`
	Frequency   string            `json:"frequency,omitempty"`
	ResidentIDs []string          `json:"resident_ids"`
	Strategy    string            `json:"strategy"`
	Percentages map[string]string `json:"percentages,omitempty"`
}

type CreateInvoiceResponse struct {
	Invoice *Invoice `json:"invoice"`
}

type GetInvoiceRequest struct {
	InvoiceID string `json:"invoice_id"`
}

type GetInvoiceResponse struct {
	Invoice *Invoice `json:"invoice"`
}

type ListInvoicesRequest struct {
	PropertyID string `json:"property_id"`
}

type ListInvoicesResponse struct {
	Invoices []*Invoice `json:"invoices"`
}

type MarkInvoicePaidRequest struct {
	InvoiceID string `json:"invoice_id"`
}

type MarkInvoicePaidResponse struct {
	Invoice *Invoice `json:"invoice"`

	// Changed is false when the invoice was already paid.
	Changed bool `json:"changed"`
}

type MarkSplitPaidRequest struct {
	SplitID string `json:"split_id"`
}

type MarkSplitPaidResponse struct {
	Invoice *Invoice `json:"invoice"`
	Changed bool     `json:"changed"`

	// Settled is true once every split of the invoice is paid.
	Settled bool `json:"settled"`
}

type ListResidentSplitsRequest struct {
	ResidentID string `json:"resident_id"`
}

type ListResidentSplitsResponse struct {
	Splits []*ResidentSplit `json:"splits"`
}

type Property struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	ManagerID string `json:"manager_id"`
	CreatedAt int64  `json:"created_at"`
}

type Resident struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Unit       string `json:"unit,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

type CreatePropertyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type CreatePropertyResponse struct {
	Property *Property `json:"property"`
}

type GetPropertyRequest struct {
	PropertyID string `json:"property_id"`
}

type GetPropertyResponse struct {
	Property  *Property   `json:"property"`
	Residents []*Resident `json:"residents"`
}

type ListPropertiesRequest struct{}

type ListPropertiesResponse struct {
	Properties []*Property `json:"properties"`
}

type AddResidentRequest struct {
	PropertyID string `json:"property_id"`
	Name       string `json:"name"`
	Unit       string `json:"unit,omitempty"`

	// Email optionally links the resident to a registered account so they
	// can mark their own splits paid.
	Email string `json:"email,omitempty"`
}

type AddResidentResponse struct {
	Resident *Resident `json:"resident"`
}

type ListResidentsRequest struct {
	PropertyID string `json:"property_id"`
}

type ListResidentsResponse struct {
	Residents []*Resident `json:"residents"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
