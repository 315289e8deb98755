package valueobjects

import "errors"

// Endpoint addresses a slot instance as (node id, slot template name).
// Slots are derived, not separately stored, so this pair is the only
// stable way to reference one.
type Endpoint struct {
	nodeID   NodeID
	slotName string
}

// NewEndpoint creates an endpoint with validation
func NewEndpoint(nodeID NodeID, slotName string) (Endpoint, error) {
	if nodeID.IsZero() {
		return Endpoint{}, errors.New("endpoint node ID cannot be zero")
	}
	if slotName == "" {
		return Endpoint{}, errors.New("endpoint slot name cannot be empty")
	}
	return Endpoint{nodeID: nodeID, slotName: slotName}, nil
}

// NodeID returns the owning node's id
func (e Endpoint) NodeID() NodeID {
	return e.nodeID
}

// SlotName returns the slot template name
func (e Endpoint) SlotName() string {
	return e.slotName
}

// Equals checks if two endpoints address the same slot
func (e Endpoint) Equals(other Endpoint) bool {
	return e.nodeID.Equals(other.nodeID) && e.slotName == other.slotName
}

// IsZero checks if the endpoint is the zero value
func (e Endpoint) IsZero() bool {
	return e.nodeID.IsZero() && e.slotName == ""
}

// String returns "nodeID:slotName"
func (e Endpoint) String() string {
	return e.nodeID.String() + ":" + e.slotName
}
