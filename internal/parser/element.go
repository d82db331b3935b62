package parser

import "fmt"

// Document is the result of parsing one UDT file with all references inlined.
type Document struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Version     string    `json:"version"`
	Info        string    `json:"info"`
	Size        int       `json:"size"`
	Elements    []Element `json:"elements"`
}

// Element is one row of the flattened UDT.
type Element struct {
	Name     string `json:"name"`
	Datatype string `json:"datatype"`
	Comment  string `json:"comment"`
	Visible  bool   `json:"visible"`
	Access   bool   `json:"access"`
	Action   Action `json:"action"`
	Value    string `json:"value"`
}

// Action marks hierarchy boundaries in the element list.
type Action int

const (
	ActionNone Action = iota
	ActionOpen
	ActionClose
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionClose:
		return "close"
	default:
		return "none"
	}
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	switch s {
	case "open":
		return ActionOpen, nil
	case "close":
		return ActionClose, nil
	case "none", "":
		return ActionNone, nil
	default:
		return ActionNone, fmt.Errorf("unknown action %q", s)
	}
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(b []byte) error {
	v, err := ParseAction(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func leaf(name, datatype, comment string) Element {
	return Element{Name: name, Datatype: datatype, Comment: comment, Visible: true, Access: true, Action: ActionNone}
}

func open(name, datatype, comment string) Element {
	return Element{Name: name, Datatype: datatype, Comment: comment, Visible: true, Action: ActionOpen}
}

func closing() Element {
	return Element{Action: ActionClose}
}
