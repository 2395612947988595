package models

// UserProfile is the authenticated identity resolved from the server.
// It is replaced wholesale on each successful validation, never patched.
type UserProfile struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Credentials are exchanged for a token during login. They are never
// persisted and exist only for the duration of the login call.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Vehicle is a fleet vehicle managed by administrators.
type Vehicle struct {
	ID           int64  `json:"id,omitempty"`
	ServiceClass string `json:"service_class"` // "Auto", "Van", "Minibus", "Bus"
	LicensePlate string `json:"license_plate"`
	Capacity     int    `json:"capacity"`
}

// ServiceRequest is a booking request submitted by clients and users.
// Status strings ("In Attesa", "Approvato", "Rifiutato") are server-owned
// and passed through opaquely.
type ServiceRequest struct {
	ID                int64  `json:"id,omitempty"`
	Requester         string `json:"requester,omitempty"`
	StartLocation     string `json:"start_location"`
	EndLocation       string `json:"end_location"`
	RequestedDatetime string `json:"requested_datetime"`
	Status            string `json:"status,omitempty"`
	ClientApproved    bool   `json:"client_approved,omitempty"`
	AdminApproved     bool   `json:"admin_approved,omitempty"`
}

// Transfer is a scheduled service as seen by the operator it is assigned to.
type Transfer struct {
	ID                 int64  `json:"id,omitempty"`
	Client             string `json:"client,omitempty"`
	Operator           string `json:"operator,omitempty"`
	Vehicle            string `json:"vehicle,omitempty"`
	ServiceType        string `json:"service_type"`
	Status             string `json:"status,omitempty"`
	StartLocation      string `json:"start_location"`
	EndLocation        string `json:"end_location,omitempty"`
	ScheduledStartTime string `json:"scheduled_start_time"`
	Notes              string `json:"notes,omitempty"`
}
