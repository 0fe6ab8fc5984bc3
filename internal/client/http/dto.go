package http

import (
	"time"

	"github.com/atelierhq/studio-booking-backend/internal/client"
	"github.com/atelierhq/studio-booking-backend/internal/pkg/request"
)

// ClientTag is the minimal embedded representation used by other modules'
// responses.
type ClientTag struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type ClientResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	AvatarRef   string    `json:"avatar_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponse(cl *client.Client) ClientResponse {
	return ClientResponse{
		ID:          cl.ID,
		DisplayName: cl.DisplayName,
		Phone:       cl.Phone,
		Email:       cl.Email,
		AvatarRef:   cl.AvatarRef,
		CreatedAt:   cl.CreatedAt,
	}
}

type ListClientsRequest struct {
	request.ListParams
	Search string `form:"search"`
}

type CreateClientRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	AvatarRef   string `json:"avatar_ref"`
}

type UpdateClientRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" binding:"omitempty,email"`
	AvatarRef   *string `json:"avatar_ref"`
}
