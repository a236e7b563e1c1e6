package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vet-clinic-server/internal/lifecycle"
	"vet-clinic-server/internal/models"
)

func TestCanPerform(t *testing.T) {
	t.Parallel()

	appt := &models.Appointment{OwnerID: "owner-1", VeterinarianID: "vet-1"}

	type caller struct {
		id   string
		role models.Role
	}
	var (
		owner    = caller{"owner-1", models.RoleOwner}
		vet      = caller{"vet-1", models.RoleVeterinarian}
		otherVet = caller{"vet-2", models.RoleVeterinarian}
		admin    = caller{"admin-1", models.RoleAdmin}
	)

	tests := []struct {
		action  lifecycle.Action
		allowed []caller
		denied  []caller
	}{
		{action: lifecycle.ActionApprove, allowed: []caller{vet, admin}, denied: []caller{owner, otherVet}},
		{action: lifecycle.ActionComplete, allowed: []caller{vet, admin}, denied: []caller{owner, otherVet}},
		{action: lifecycle.ActionReject, allowed: []caller{vet, admin}, denied: []caller{owner, otherVet}},
		{action: lifecycle.ActionConfirm, allowed: []caller{owner, admin}, denied: []caller{vet, otherVet}},
		{action: lifecycle.ActionCancel, allowed: []caller{owner, vet, admin}, denied: []caller{otherVet}},
		{action: lifecycle.ActionReschedule, allowed: []caller{owner, vet, admin}, denied: []caller{otherVet}},
	}

	for _, tt := range tests {
		for _, c := range tt.allowed {
			assert.True(t, canPerform(tt.action, appt, c.id, c.role), "%s by %s", tt.action, c.id)
		}
		for _, c := range tt.denied {
			assert.False(t, canPerform(tt.action, appt, c.id, c.role), "%s by %s", tt.action, c.id)
		}
	}

	// An owner id presented with the wrong role is not the owner.
	assert.False(t, canPerform(lifecycle.ActionConfirm, appt, "owner-1", models.RoleVeterinarian))
}

func TestPastTenseCoversEveryAction(t *testing.T) {
	t.Parallel()

	for _, action := range lifecycle.Actions {
		assert.NotEmpty(t, pastTense[action], action)
	}
}
