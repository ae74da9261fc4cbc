package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"

	"github.com/google/uuid"
)

// Role identifies which side of the marketplace an actor acts from.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleFarmer lists produce and decides on bids.
	RoleFarmer

	// RoleBuyer bids on listed produce and funds escrow.
	RoleBuyer

	// RoleHauler carries locked orders and presents verification tokens.
	RoleHauler

	// RoleSystem drives automatic transitions: hauler matching, settlement
	// finalization, and deadline cancellations.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleFarmer:  "farmer",
		RoleBuyer:   "buyer",
		RoleHauler:  "hauler",
		RoleSystem:  "system",
	}
}

// RoleFromString parses a role name as carried on the wire.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	if r < RoleFarmer || r > RoleSystem {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// systemActorID is the well-known identifier system transitions are audited
// under.
var systemActorID = UUID{id: uuid.MustParse("00000000-0000-0000-0000-000000000001")}

// Actor is an authenticated caller: a role plus a stable identifier supplied
// by the identity service. Ownership checks compare the identifier against
// the aggregate's references.
type Actor struct {
	role Role
	id   UUID
}

// NewActor creates an Actor with validation.
func NewActor(role Role, id UUID) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{role: role, id: id}, nil
}

// NewSystemActor creates the actor automatic transitions run as.
func NewSystemActor() Actor {
	return Actor{role: RoleSystem, id: systemActorID}
}

// Role returns the actor's marketplace role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's stable identifier.
func (a Actor) ID() UUID {
	return a.id
}

// IsSystem reports whether the actor is the internal system actor.
func (a Actor) IsSystem() bool {
	return a.role == RoleSystem
}

// Validate ensures the Actor was properly constructed.
func (a Actor) Validate() error {
	if err := a.role.Validate(); err != nil {
		return err
	}
	return a.id.Validate()
}
