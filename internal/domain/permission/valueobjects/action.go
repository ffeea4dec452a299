package valueobjects

import "fmt"

type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionAssign  Action = "assign"
	ActionComment Action = "comment"
	ActionExport  Action = "export"
)

var validActions = map[Action]bool{
	ActionView:    true,
	ActionCreate:  true,
	ActionUpdate:  true,
	ActionDelete:  true,
	ActionAssign:  true,
	ActionComment: true,
	ActionExport:  true,
}

func NewAction(action string) (Action, error) {
	if action == "" {
		return "", fmt.Errorf("action cannot be empty")
	}

	a := Action(action)
	if !validActions[a] {
		return "", fmt.Errorf("invalid action: %s", action)
	}

	return a, nil
}

func (a Action) String() string {
	return string(a)
}
