package plan

// Action is one build step. Actions are declared in execution order.
type Action int

const (
	ActionGetVersion Action = iota
	ActionCreateImage
	ActionCreateBaseBox
	ActionAddBaseBox
	ActionCreateFlavorBox
	ActionAddFlavorBox
)

var actionNames = [...]string{
	ActionGetVersion:      "get-version",
	ActionCreateImage:     "create-image",
	ActionCreateBaseBox:   "create-base-box",
	ActionAddBaseBox:      "add-base-box",
	ActionCreateFlavorBox: "create-flavor-box",
	ActionAddFlavorBox:    "add-flavor-box",
}

// AllActions returns every action in execution order.
func AllActions() []Action {
	return []Action{
		ActionGetVersion,
		ActionCreateImage,
		ActionCreateBaseBox,
		ActionAddBaseBox,
		ActionCreateFlavorBox,
		ActionAddFlavorBox,
	}
}

// String returns the action's kebab-case name.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Actions records which build steps are needed.
type Actions struct {
	GetVersion      bool `yaml:"get_version" json:"get_version"`
	CreateImage     bool `yaml:"create_image" json:"create_image"`
	CreateBaseBox   bool `yaml:"create_base_box" json:"create_base_box"`
	AddBaseBox      bool `yaml:"add_base_box" json:"add_base_box"`
	CreateFlavorBox bool `yaml:"create_flavor_box" json:"create_flavor_box"`
	AddFlavorBox    bool `yaml:"add_flavor_box" json:"add_flavor_box"`
}

// Has reports whether action is planned.
func (a Actions) Has(action Action) bool {
	switch action {
	case ActionGetVersion:
		return a.GetVersion
	case ActionCreateImage:
		return a.CreateImage
	case ActionCreateBaseBox:
		return a.CreateBaseBox
	case ActionAddBaseBox:
		return a.AddBaseBox
	case ActionCreateFlavorBox:
		return a.CreateFlavorBox
	case ActionAddFlavorBox:
		return a.AddFlavorBox
	default:
		return false
	}
}

// List returns the planned actions in execution order.
func (a Actions) List() []Action {
	var out []Action
	for _, action := range AllActions() {
		if a.Has(action) {
			out = append(out, action)
		}
	}
	return out
}

// Empty reports whether no action is planned.
func (a Actions) Empty() bool {
	return len(a.List()) == 0
}
