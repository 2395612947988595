package roles

// Role classifies an authenticated user. The server owns the role set and
// may grow it independently of client deployments, so parsing never fails;
// unrecognized values map to RoleUnknown.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdministrator
	RoleClient
	RoleOperator
	RoleUser
)

func (r Role) String() string {
	switch r {
	case RoleAdministrator:
		return "Administrator"
	case RoleClient:
		return "Client"
	case RoleOperator:
		return "Operator"
	case RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

// ParseRole maps a server role string to a Role. The legacy wire values
// predate the English names and are still emitted by older servers.
func ParseRole(s string) Role {
	switch s {
	case "Administrator", "Amministratore":
		return RoleAdministrator
	case "Client", "Cliente":
		return RoleClient
	case "Operator", "Operatore":
		return RoleOperator
	case "User", "Utilizzatore":
		return RoleUser
	default:
		return RoleUnknown
	}
}

// ViewDescriptor describes the dashboard variant and the actions it
// exposes for a role.
type ViewDescriptor struct {
	Title       string
	Description string

	// Capabilities
	ManageVehicles        bool // create and list vehicles
	SubmitRequests        bool // submit and track service requests
	ViewAssignedTransfers bool // list transfers assigned to the operator
}

// DescriptorFor selects the dashboard variant for a role. It is total:
// every role, including RoleUnknown, maps to exactly one descriptor. An
// unknown role gets a defined view with no capabilities rather than an
// error.
func DescriptorFor(role Role) ViewDescriptor {
	switch role {
	case RoleAdministrator:
		return ViewDescriptor{
			Title:          "Admin Dashboard",
			Description:    "You have full access to the system.",
			ManageVehicles: true,
		}
	case RoleClient:
		return ViewDescriptor{
			Title:          "Client Dashboard",
			Description:    "Here you can manage your transfers and requests.",
			SubmitRequests: true,
		}
	case RoleOperator:
		return ViewDescriptor{
			Title:                 "Operator Dashboard",
			Description:           "Here you can view and manage your assigned services.",
			ViewAssignedTransfers: true,
		}
	case RoleUser:
		return ViewDescriptor{
			Title:          "User Dashboard",
			Description:    "Here you can request new services.",
			SubmitRequests: true,
		}
	default:
		return ViewDescriptor{
			Title:       "Dashboard",
			Description: "Welcome! Your role is not defined.",
		}
	}
}
