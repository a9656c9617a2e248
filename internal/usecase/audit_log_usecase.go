package usecase

import (
	"context"
	"strings"
	"time"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

type AuditLogUsecase struct {
	auditRepo repo.AuditLogRepository
}

func NewAuditLogUsecase(auditRepo repo.AuditLogRepository) *AuditLogUsecase {
	return &AuditLogUsecase{auditRepo: auditRepo}
}

type ListAuditLogsInput struct {
	Action       string
	ResourceType string
	ResourceID   *int64
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// 新しい順
func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) ([]model.AuditLog, error) {
	f := repo.AuditLogFilter{
		ResourceID:  in.ResourceID,
		CreatedFrom: in.From,
		CreatedTo:   in.To,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}

	if a := strings.ToUpper(strings.TrimSpace(in.Action)); a != "" {
		action := model.AuditAction(a)
		switch action {
		case model.AuditActionCreateProduct, model.AuditActionUpdateProduct,
			model.AuditActionDeactivateProduct, model.AuditActionCreateCategory:
		default:
			return nil, badRequest("invalid action")
		}
		f.Action = &action
	}
	if rt := strings.ToLower(strings.TrimSpace(in.ResourceType)); rt != "" {
		resource := model.AuditResourceType(rt)
		if resource != model.AuditResourceProduct && resource != model.AuditResourceCategory {
			return nil, badRequest("invalid resource_type")
		}
		f.ResourceType = &resource
	}
	if in.ResourceID != nil && *in.ResourceID <= 0 {
		return nil, badRequest("invalid resource_id")
	}
	if err := validateRange(in.From, in.To); err != nil {
		return nil, err
	}
	if err := validatePage(in.Limit, in.Offset); err != nil {
		return nil, err
	}

	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return nil, dbError(err)
	}
	return logs, nil
}
