package mapping

import (
	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/models"
)

// The audit columns have the same shape on both sides.

func toModelAudit(a domain.AuditFields) models.AuditFields {
	return models.AuditFields(a)
}

func toDomainAudit(a models.AuditFields) domain.AuditFields {
	return domain.AuditFields(a)
}
