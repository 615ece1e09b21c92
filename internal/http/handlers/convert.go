package handlers

import "market-dispatch/internal/domain"

func courierToDTO(c *domain.Courier) courierDTO {
	return courierDTO{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Status:        c.Status,
		Verified:      c.Verified,
		TransportType: c.TransportType,
		HasChat:       c.ChatID != nil,
		HasPosition:   c.HasPosition(),
	}
}

func couriersToDTO(list []domain.Courier) []courierDTO {
	out := make([]courierDTO, 0, len(list))
	for i := range list {
		out = append(out, courierToDTO(&list[i]))
	}
	return out
}

func orderToDTO(o *domain.Order) orderDTO {
	return orderDTO{
		ID:            o.ID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		CourierID:     o.CourierID,
		Lat:           o.Lat,
		Lng:           o.Lng,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
