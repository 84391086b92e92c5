package model

// OrdersUpdated signals that an order was created or its status changed.
type OrdersUpdated struct {
	OrderID  string      `json:"orderId"`
	Username string      `json:"username,omitempty"`
	Status   OrderStatus `json:"orderStatus,omitempty"`
}

func (e OrdersUpdated) EventKey() string  { return e.OrderID }
func (e OrdersUpdated) EventType() string { return "orders.updated" }

// VehiclesUpdated signals an admin change to the vehicle inventory.
type VehiclesUpdated struct {
	VehicleID string `json:"vehicleId"`
	Action    string `json:"action"`
}

func (e VehiclesUpdated) EventKey() string  { return e.VehicleID }
func (e VehiclesUpdated) EventType() string { return "vehicles.updated" }
