package admin

import "travelease/model"

type UpdateStatusReq struct {
	OrderStatus model.OrderStatus `json:"orderStatus" validate:"required"`
}
