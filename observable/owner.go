package observable

import (
	"github.com/google/uuid"
)

// Owner is the identity under which a subscription is registered. Owners are
// compared by address, so a copy of an Owner is a different owner.
type Owner struct {
	id uuid.UUID
}

// NewOwner returns a new owner with a random ID.
func NewOwner() *Owner {
	return &Owner{id: uuid.New()}
}

// ID returns the random ID assigned to the owner. It only serves to tell
// owners apart in logs.
func (o *Owner) ID() uuid.UUID {
	return o.id
}

func (o *Owner) String() string {
	return "Owner(" + o.id.String() + ")"
}
