package auth

import "shop-api/internal/domain"

// Action names a protected operation. Both the REST handlers and the
// GraphQL resolvers funnel their checks through Authorize so the two
// transports cannot drift apart.
type Action string

const (
	ActionViewOrder         Action = "order:view"
	ActionCancelOrder       Action = "order:cancel"
	ActionUpdateOrderStatus Action = "order:update_status"
	ActionManageProducts    Action = "product:manage"
	ActionDeleteReview      Action = "review:delete"
	ActionManageUsers       Action = "user:manage"
	ActionUpdateProfile     Action = "user:update_profile"
)

// adminOnly actions ignore resource ownership entirely.
var adminOnly = map[Action]bool{
	ActionUpdateOrderStatus: true,
	ActionManageProducts:    true,
	ActionManageUsers:       true,
}

// Authorize decides whether actor may perform action on a resource owned
// by ownerID. Admins may do anything; owners may act on their own
// resources unless the action is admin-only.
func Authorize(actor *domain.User, action Action, ownerID uint64) error {
	if actor == nil {
		return domain.ErrUnauthorized
	}
	if actor.IsAdmin() {
		return nil
	}
	if adminOnly[action] {
		return domain.ErrForbidden
	}
	if actor.ID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
