package model

import "strings"

type Vehicle struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Available   bool     `json:"available"`
	Capacity    int      `json:"capacity"`
	Features    []string `json:"features"`
}

const DefaultVehicleImage = "https://images.unsplash.com/photo-1552519507-da3b142c6e3d?w=800&auto=format&fit=crop"

// VehicleInput is the admin create/update form. Features is the
// comma-joined form the backend stores.
// swagger:model VehicleInput
type VehicleInput struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Capacity    int     `json:"capacity" validate:"gte=0"`
	Features    string  `json:"features"`
	Available   *bool   `json:"available,omitempty"`
}

// WithDefaults fills the blanks the admin form leaves empty.
func (in VehicleInput) WithDefaults() VehicleInput {
	if strings.TrimSpace(in.Name) == "" {
		in.Name = "Untitled Vehicle"
	}
	if strings.TrimSpace(in.Type) == "" {
		in.Type = "Unknown"
	}
	if strings.TrimSpace(in.Image) == "" {
		in.Image = DefaultVehicleImage
	}
	if in.Capacity <= 0 {
		in.Capacity = 4
	}
	if in.Price < 0 {
		in.Price = 0
	}
	if in.Available == nil {
		t := true
		in.Available = &t
	}
	return in
}

// SplitFeatures turns a comma-joined feature string into trimmed, non-empty items.
func SplitFeatures(s string) []string {
	return CleanFeatures(strings.Split(s, ","))
}

// CleanFeatures trims every item and drops empty ones, keeping order.
func CleanFeatures(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

func JoinFeatures(items []string) string {
	return strings.Join(CleanFeatures(items), ", ")
}
