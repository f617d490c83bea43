package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shop-api/internal/domain"
)

func TestAuthorize(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	owner := &domain.User{ID: 2, Role: domain.RoleCustomer}
	stranger := &domain.User{ID: 3, Role: domain.RoleCustomer}

	tests := []struct {
		name    string
		actor   *domain.User
		action  Action
		ownerID uint64
		wantErr error
	}{
		{"nil actor", nil, ActionViewOrder, 2, domain.ErrUnauthorized},
		{"admin can do anything", admin, ActionManageUsers, 0, nil},
		{"admin bypasses ownership", admin, ActionViewOrder, 2, nil},
		{"owner views own order", owner, ActionViewOrder, 2, nil},
		{"stranger blocked from order", stranger, ActionViewOrder, 2, domain.ErrForbidden},
		{"owner cancels own order", owner, ActionCancelOrder, 2, nil},
		{"owner deletes own review", owner, ActionDeleteReview, 2, nil},
		{"customer blocked from status updates", owner, ActionUpdateOrderStatus, 2, domain.ErrForbidden},
		{"customer blocked from product management", owner, ActionManageProducts, 0, domain.ErrForbidden},
		{"customer blocked from user management", owner, ActionManageUsers, 2, domain.ErrForbidden},
		{"user edits own profile", owner, ActionUpdateProfile, 2, nil},
		{"user blocked from another profile", stranger, ActionUpdateProfile, 2, domain.ErrForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, tc.action, tc.ownerID)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
