package handlers

import (
	"time"

	"market-dispatch/internal/domain"
)

type courierDTO struct {
	ID            int64                       `json:"id"`
	Name          string                      `json:"name"`
	Phone         string                      `json:"phone"`
	Status        domain.CourierStatus        `json:"status"`
	Verified      bool                        `json:"is_verified"`
	TransportType domain.CourierTransportType `json:"transport_type"`
	HasChat       bool                        `json:"has_chat"`
	HasPosition   bool                        `json:"has_position"`
}

type createCourierRequest struct {
	Name          string                      `json:"name"`
	Phone         string                      `json:"phone"`
	Status        domain.CourierStatus        `json:"status"`
	TransportType domain.CourierTransportType `json:"transport_type"`
}

type updateCourierRequest struct {
	ID            int64                        `json:"id"`
	Name          *string                      `json:"name,omitempty"`
	Phone         *string                      `json:"phone,omitempty"`
	Status        *domain.CourierStatus        `json:"status,omitempty"`
	TransportType *domain.CourierTransportType `json:"transport_type,omitempty"`
	Verified      *bool                        `json:"is_verified,omitempty"`
}

type orderDTO struct {
	ID            string               `json:"id"`
	Status        domain.OrderStatus   `json:"status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	CourierID     *int64               `json:"courier_id,omitempty"`
	Lat           *float64             `json:"lat,omitempty"`
	Lng           *float64             `json:"lng,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type actionRequest struct {
	Action string `json:"action"`
}
