package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

// PaymentBreakdown is role-sensitive: clients receive totals only, the
// quote/tax fields are zeroed before the response is written.
type PaymentBreakdown struct {
	BaseQuote  int64   `json:"base_quote,omitempty"`
	TaxRate    float64 `json:"tax_rate,omitempty"`
	TaxAmount  int64   `json:"tax_amount,omitempty"`
	TotalQuote int64   `json:"total_quote"`
	TotalPaid  int64   `json:"total_paid"`
}

type ShootResponse struct {
	ID                     string           `json:"shoot_id"`
	ClientID               string           `json:"client_id"`
	PhotographerID         string           `json:"photographer_id,omitempty"`
	EditorID               string           `json:"editor_id,omitempty"`
	Status                 string           `json:"status"`
	WorkflowStatus         string           `json:"workflowStatus"`
	ScheduledDate          string           `json:"scheduled_date"`
	ScheduledTime          string           `json:"time,omitempty"`
	Address                string           `json:"address,omitempty"`
	City                   string           `json:"city,omitempty"`
	State                  string           `json:"state,omitempty"`
	Zip                    string           `json:"zip,omitempty"`
	Services               []string         `json:"services"`
	BracketType            string           `json:"bracket_type,omitempty"`
	ExpectedDeliveredCount int              `json:"expected_delivered_count"`
	Payment                PaymentBreakdown `json:"payment"`
	PhotographerNotes      string           `json:"photographer_notes,omitempty"`
	EditingNotes           string           `json:"editing_notes,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

type ShootListResponse struct {
	Shoots []ShootResponse `json:"shoots"`
}

type UploadWarning struct {
	Message               string `json:"message"`
	ExpectedRawCount      int    `json:"expected_raw_count"`
	UploadedCount         int    `json:"uploaded_count"`
	EquivalentFinalPhotos int    `json:"equivalent_final_photos"`
}

type UploadErrorInfo struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
	Stage    string `json:"stage"`
}

type UploadResponse struct {
	ShootID string            `json:"shoot_id"`
	Status  string            `json:"status"`
	Files   []FileInfo        `json:"files"`
	Warning *UploadWarning    `json:"warning,omitempty"`
	Errors  []UploadErrorInfo `json:"errors,omitempty"`
}

type FileInfo struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	IsExtra  bool   `json:"is_extra"`
}

type MediaFileResponse struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	UploadType    string    `json:"upload_type"`
	WorkflowStage string    `json:"workflowStage"`
	IsExtra       bool      `json:"is_extra"`
	StorageURL    string    `json:"storage_url"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	LargeURL      string    `json:"large_url,omitempty"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type"`
	CreatedAt     time.Time `json:"created_at"`
}

type FilesResponse struct {
	Files []MediaFileResponse `json:"files"`
}

type IssueResponse struct {
	ID               string    `json:"id"`
	ShootID          string    `json:"shoot_id"`
	MediaID          string    `json:"media_id,omitempty"`
	MediaFilename    string    `json:"media_filename,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Status           string    `json:"status"`
	Severity         string    `json:"severity"`
	AssignedToRole   string    `json:"assigned_to_role"`
	AssignedToUserID string    `json:"assigned_to_user_id,omitempty"`
	RaisedByID       string    `json:"raised_by_id"`
	RaisedByRole     string    `json:"raised_by_role"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type IssuesResponse struct {
	Issues []IssueResponse `json:"issues"`
}

type ClientResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

type InvoiceResponse struct {
	ID            string     `json:"id"`
	ShootID       string     `json:"shoot_id"`
	ClientID      string     `json:"client_id"`
	InvoiceNumber string     `json:"invoice_number"`
	Amount        int64      `json:"amount"`
	TaxAmount     int64      `json:"tax_amount"`
	Total         int64      `json:"total"`
	Status        string     `json:"status"`
	IssuedAt      time.Time  `json:"issued_at"`
	DueAt         time.Time  `json:"due_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type InvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

type PaymentResponse struct {
	ID          string    `json:"id"`
	ShootID     string    `json:"shoot_id"`
	Amount      int64     `json:"amount"`
	PaymentType string    `json:"payment_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	IntentID     string `json:"intent_id"`
}

type AvailabilityResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Note      string `json:"note,omitempty"`
}

type AvailabilityListResponse struct {
	Availability []AvailabilityResponse `json:"availability"`
}

type ReportSummaryResponse struct {
	ShootsByStatus map[string]int `json:"shoots_by_status"`
	OpenIssues     int            `json:"open_issues"`
	TotalQuoted    int64          `json:"total_quoted"`
	TotalPaid      int64          `json:"total_paid"`
	ShootsThisWeek int            `json:"shoots_this_week"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
