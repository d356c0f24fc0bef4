package flow

// VarAppearance represents an identifier first observed walking backward
type VarAppearance struct {
	ID    string      `yaml:"id" json:"id"`
	Value interface{} `yaml:"value" json:"value"`
}

// VarModification represents an identifier value change within a frame
type VarModification struct {
	ID       string      `yaml:"id" json:"id"`
	OldValue interface{} `yaml:"old" json:"old"`
	NewValue interface{} `yaml:"new" json:"new"`
}

// VarSwitch represents the same value known by a different name across a call boundary
type VarSwitch struct {
	ArgID   string      `yaml:"arg" json:"arg"`
	ParamID string      `yaml:"param" json:"param"`
	Value   interface{} `yaml:"value" json:"value"`
}

// Change represents a recorded value change of a tracked identifier
type Change interface {
	Identifier() string
}

// Identifier returns the appeared identifier
func (a *VarAppearance) Identifier() string { return a.ID }

// Identifier returns the modified identifier
func (m *VarModification) Identifier() string { return m.ID }
