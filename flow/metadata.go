package flow

// Metadata holds node state populated by a backward slicing pass
type Metadata struct {
	tracking       map[string]bool
	appearances    []*VarAppearance
	modifications  []*VarModification
	switches       []*VarSwitch
	relevantReturn bool
}

// Tracking returns tracked identifiers in sorted order
func (n *Node) Tracking() []string {
	return sortedKeys(n.meta.tracking)
}

// AddTracking adds identifiers to the tracking set
func (n *Node) AddTracking(ids ...string) {
	if n.meta.tracking == nil {
		n.meta.tracking = map[string]bool{}
	}
	for _, id := range ids {
		n.meta.tracking[id] = true
	}
}

// SyncTracking adds identifiers tracked by other that exist in the node vars
func (n *Node) SyncTracking(other *Node) {
	for _, id := range other.Tracking() {
		if n.Vars.Has(id) {
			n.AddTracking(id)
		}
	}
}

// AddSwitch records a variable switch
func (n *Node) AddSwitch(switched *VarSwitch) {
	n.meta.switches = append(n.meta.switches, switched)
}

// Appearances returns recorded variable appearances
func (n *Node) Appearances() []*VarAppearance {
	return n.meta.appearances
}

// Modifications returns recorded variable modifications
func (n *Node) Modifications() []*VarModification {
	return n.meta.modifications
}

// Switches returns recorded variable switches
func (n *Node) Switches() []*VarSwitch {
	return n.meta.switches
}

// RelevantReturn returns true if the node return value was consumed by a tracked assignment
func (n *Node) RelevantReturn() bool {
	return n.meta.relevantReturn
}

// MarkRelevantReturn flags the node return value as relevant
func (n *Node) MarkRelevantReturn() {
	n.meta.relevantReturn = true
}

// HasChanges returns true if any change was recorded on the node
func (n *Node) HasChanges() bool {
	return len(n.meta.appearances)+len(n.meta.modifications)+len(n.meta.switches) > 0
}

// ResetMetadata clears slicing state, target tracking is kept by Flow.Reset
func (n *Node) ResetMetadata() {
	n.meta = Metadata{}
}
