package services

import (
	"context"
	"fmt"

	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
	"bdvail/internal/projectors"
	"bdvail/internal/storage"
	"bdvail/internal/utils"
)

const msgSupportReceived = "Support request received."

type SupportService struct {
	Tickets   storage.SupportStore
	RequestID string
}

// Submit stores a support ticket. Invalid requests are answered with an
// unsuccessful response.
func (s SupportService) Submit(ctx context.Context, req models.SupportRequest) (models.ApiResponse, error) {
	if err := projectors.ValidateSupport(req); err != nil {
		return models.ApiResponse{Success: false, Message: err.Error()}, nil
	}
	req.Subject = utils.Safe(req.Subject, models.DefaultSupportSubject)

	id, err := s.Tickets.Insert(ctx, req)
	if err != nil {
		return models.ApiResponse{}, domain.InternalError{Msg: "store support ticket", Err: err}
	}
	utils.LogEvent(s.RequestID, "support", "submit", fmt.Sprintf("ticket_id=%d", id))
	return models.ApiResponse{Success: true, Message: msgSupportReceived}, nil
}
