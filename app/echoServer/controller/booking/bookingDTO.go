package booking

type SelectVehicleReq struct {
	VehicleID string `json:"vehicleId" validate:"required"`
}
