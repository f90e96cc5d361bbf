package service

import (
	"context"
	"encoding/json"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// writeAuditLog records an audit entry best-effort: a failed audit write
// never fails the business operation it describes.
func writeAuditLog(ctx context.Context, auditRepo repository.AuditRepository, userID string, action, entityID, entityName string, details interface{}) {
	if auditRepo == nil {
		return
	}

	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	payload, err := json.Marshal(details)
	if err != nil {
		payload = []byte("{}")
	}

	_ = auditRepo.Create(ctx, &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}
