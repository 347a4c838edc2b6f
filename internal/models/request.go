package models

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type CreateShootRequest struct {
	ClientID               string   `json:"client_id" binding:"required"`
	ScheduledDate          string   `json:"scheduled_date" binding:"required"` // YYYY-MM-DD
	ScheduledTime          string   `json:"time"`
	Address                string   `json:"address"`
	City                   string   `json:"city"`
	State                  string   `json:"state"`
	Zip                    string   `json:"zip"`
	Services               []string `json:"services"`
	BracketType            string   `json:"bracket_type"`
	ExpectedDeliveredCount int      `json:"expected_delivered_count"`
	BaseQuote              int64    `json:"base_quote"`
	TaxRate                float64  `json:"tax_rate"`
}

// UpdateShootRequest is the PATCH body. Status and WorkflowStatus are
// interchangeable; callers that send both must send the same value.
type UpdateShootRequest struct {
	Status            *string  `json:"status"`
	WorkflowStatus    *string  `json:"workflowStatus"`
	ScheduledDate     *string  `json:"scheduled_date"`
	ScheduledTime     *string  `json:"time"`
	Address           *string  `json:"address"`
	Services          []string `json:"services"`
	PhotographerNotes *string  `json:"photographer_notes"`
	EditingNotes      *string  `json:"editing_notes"`
}

type AssignRequest struct {
	PhotographerID string `json:"photographer_id"`
	EditorID       string `json:"editor_id"`
}

type SendToEditingRequest struct {
	EditorID string `json:"editor_id" binding:"required"`
}

type CreateIssueRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	MediaID        string `json:"media_id"`
	AssignedToRole string `json:"assigned_to_role" binding:"required"`
}

type UpdateIssueRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignIssueRequest struct {
	Role   string `json:"role" binding:"required"`
	UserID string `json:"user_id"`
}

type MarkPaidRequest struct {
	PaymentType string `json:"payment_type" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
}

type CreatePaymentIntentRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

type DownloadRequest struct {
	FileIDs []string `json:"file_ids" binding:"required"`
	Size    string   `json:"size"` // thumbnail | large | original
}

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	UserID  string `json:"user_id"` // portal login for this client, optional
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	UserID  *string `json:"user_id"`
}

type CreateAvailabilityRequest struct {
	Day       string `json:"day" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Note      string `json:"note"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}
