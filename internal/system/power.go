package system

import "fmt"

// PowerAction is a session or machine power transition.
type PowerAction string

const (
	PowerLogout   PowerAction = "logout"
	PowerSuspend  PowerAction = "suspend"
	PowerReboot   PowerAction = "reboot"
	PowerShutdown PowerAction = "poweroff"
)

// PowerActions lists the actions in menu order.
var PowerActions = []PowerAction{PowerLogout, PowerSuspend, PowerReboot, PowerShutdown}

// ParsePowerAction validates a user-supplied action name.
func ParsePowerAction(raw string) (PowerAction, error) {
	for _, action := range PowerActions {
		if string(action) == raw {
			return action, nil
		}
	}
	return "", fmt.Errorf("unknown power action: %s", raw)
}

// Label is the menu text for the action.
func (a PowerAction) Label() string {
	switch a {
	case PowerLogout:
		return "Log Out"
	case PowerSuspend:
		return "Suspend"
	case PowerReboot:
		return "Restart"
	case PowerShutdown:
		return "Shut Down"
	default:
		return string(a)
	}
}

// Icon is the freedesktop icon name for the action.
func (a PowerAction) Icon() string {
	switch a {
	case PowerLogout:
		return "system-log-out"
	case PowerSuspend:
		return "system-suspend"
	case PowerReboot:
		return "system-reboot"
	case PowerShutdown:
		return "system-shutdown"
	default:
		return ""
	}
}

func (a PowerAction) command(user string) (string, []string, error) {
	switch a {
	case PowerLogout:
		return "loginctl", []string{"terminate-user", user}, nil
	case PowerSuspend, PowerReboot, PowerShutdown:
		return "systemctl", []string{string(a)}, nil
	default:
		return "", nil, fmt.Errorf("unknown power action: %s", a)
	}
}
