package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// Supabase Go client has no direct Realtime publish; database writes on
	// subscribed tables trigger Realtime automatically. Kept as the single
	// publish point so an explicit REST publish can slot in later.
	return nil
}

func (r *RealtimeClient) PublishShootEvent(shootID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("shoot:%s", shootID.String())
	return r.PublishEvent(channel, event, payload)
}

func (r *RealtimeClient) PublishUserEvent(userID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("user:%s", userID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func StatusChangedPayload(shootID uuid.UUID, from, to string) map[string]interface{} {
	return map[string]interface{}{
		"shoot_id": shootID.String(),
		"from":     from,
		"status":   to,
	}
}

func UploadStartedPayload(shootID uuid.UUID, uploadType string, fileCount int) map[string]interface{} {
	return map[string]interface{}{
		"shoot_id":    shootID.String(),
		"upload_type": uploadType,
		"file_count":  fileCount,
	}
}

func UploadCompletedPayload(shootID uuid.UUID, uploadType string, fileCount int, warning string) map[string]interface{} {
	payload := map[string]interface{}{
		"shoot_id":    shootID.String(),
		"upload_type": uploadType,
		"file_count":  fileCount,
	}
	if warning != "" {
		payload["warning"] = warning
	}
	return payload
}

func IssueRaisedPayload(shootID, issueID uuid.UUID, assignedToRole string) map[string]interface{} {
	return map[string]interface{}{
		"shoot_id":         shootID.String(),
		"issue_id":         issueID.String(),
		"assigned_to_role": assignedToRole,
	}
}

func IssueUpdatedPayload(shootID, issueID uuid.UUID, status string) map[string]interface{} {
	return map[string]interface{}{
		"shoot_id": shootID.String(),
		"issue_id": issueID.String(),
		"status":   status,
	}
}

func PaymentRecordedPayload(shootID uuid.UUID, amount int64, totalPaid int64) map[string]interface{} {
	return map[string]interface{}{
		"shoot_id":   shootID.String(),
		"amount":     amount,
		"total_paid": totalPaid,
	}
}
