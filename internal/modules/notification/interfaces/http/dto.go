package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mgoudin/learnhub/internal/modules/notification/application"
	"github.com/mgoudin/learnhub/internal/modules/notification/domain"
)

var validate = validator.New()

type CreateNotificationRequest struct {
	UserID            string `json:"userId" validate:"required,uuid4"`
	Type              string `json:"type" validate:"required"`
	Title             string `json:"title" validate:"required,max=200"`
	Message           string `json:"message" validate:"required,max=2000"`
	Priority          int    `json:"priority" validate:"gte=0,lte=3"`
	ActionURL         string `json:"actionUrl" validate:"omitempty,max=500"`
	RelatedEntityID   string `json:"relatedEntityId" validate:"omitempty,uuid4"`
	RelatedEntityType string `json:"relatedEntityType" validate:"omitempty,max=50"`
}

// ToParams validates the request and converts it to service parameters.
func (r CreateNotificationRequest) ToParams() (application.CreateParams, error) {
	if err := validate.Struct(r); err != nil {
		return application.CreateParams{}, err
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return application.CreateParams{}, err
	}
	params := application.CreateParams{
		UserID:            userID,
		Type:              domain.NotificationType(r.Type),
		Title:             r.Title,
		Message:           r.Message,
		Priority:          domain.Priority(r.Priority),
		ActionURL:         r.ActionURL,
		RelatedEntityType: r.RelatedEntityType,
	}
	if r.RelatedEntityID != "" {
		relatedID, err := uuid.Parse(r.RelatedEntityID)
		if err != nil {
			return application.CreateParams{}, err
		}
		params.RelatedEntityID = &relatedID
	}
	return params, nil
}

type UpdatePreferenceRequest struct {
	IsEnabled      bool   `json:"isEnabled"`
	DeliveryMethod string `json:"deliveryMethod" validate:"omitempty,oneof=InApp Email Both"`
}
