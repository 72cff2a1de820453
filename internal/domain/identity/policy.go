package identity

import (
	"github.com/newsroom/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action is an operation subject to the access policy
type Action string

const (
	ActionCreatePost      Action = "post:create"
	ActionReadPost        Action = "post:read"
	ActionUpdatePost      Action = "post:update"
	ActionDeletePost      Action = "post:delete"
	ActionApprovePost     Action = "post:approve"
	ActionRejectPost      Action = "post:reject"
	ActionCreateComment   Action = "comment:create"
	ActionModerateComment Action = "comment:moderate"
	ActionManageTaxonomy  Action = "taxonomy:manage"
	ActionManageUsers     Action = "user:manage"
	ActionCreateMagazine  Action = "magazine:create"
	ActionApproveMagazine Action = "magazine:approve"
	ActionUploadMedia     Action = "media:upload"
)

// Actor is the authenticated principal an access decision is made for
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// Resource describes the target of an access decision in role-neutral terms.
// Callers translate aggregate state into these fields so the policy stays
// free of content-package imports.
type Resource struct {
	OwnerID   uuid.UUID
	Mutable   bool // still in a pre-publication state
	Published bool
	Public    bool
}

// Authorize decides whether the actor may perform the action on the resource.
// A nil actor is an unauthenticated request and always gets ErrUnauthorized;
// an authenticated actor lacking the role gets ErrForbidden.
func Authorize(actor *Actor, action Action, res Resource) error {
	if actor == nil {
		return shared.ErrUnauthorized
	}

	switch actor.Role {
	case RoleAdmin:
		return nil
	case RoleEditor:
		return authorizeEditor(actor, action, res)
	case RoleWriter:
		return authorizeWriter(actor, action, res)
	case RoleReader:
		return authorizeReader(action, res)
	}

	return shared.ErrForbidden
}

// Editors review everything but only write to their own posts.
func authorizeEditor(actor *Actor, action Action, res Resource) error {
	switch action {
	case ActionReadPost, ActionApprovePost, ActionRejectPost,
		ActionModerateComment, ActionCreateComment,
		ActionCreatePost, ActionManageTaxonomy,
		ActionCreateMagazine, ActionApproveMagazine, ActionUploadMedia:
		return nil
	case ActionUpdatePost, ActionDeletePost:
		return authorizeOwnMutable(actor, res)
	}
	return shared.ErrForbidden
}

func authorizeWriter(actor *Actor, action Action, res Resource) error {
	switch action {
	case ActionCreatePost, ActionCreateComment, ActionUploadMedia:
		return nil
	case ActionReadPost:
		if res.Published && res.Public {
			return nil
		}
		if res.OwnerID == actor.UserID {
			return nil
		}
		return shared.ErrForbidden
	case ActionUpdatePost, ActionDeletePost:
		return authorizeOwnMutable(actor, res)
	}
	return shared.ErrForbidden
}

func authorizeReader(action Action, res Resource) error {
	switch action {
	case ActionReadPost:
		if res.Published && res.Public {
			return nil
		}
		return shared.ErrForbidden
	case ActionCreateComment:
		return nil
	}
	return shared.ErrForbidden
}

func authorizeOwnMutable(actor *Actor, res Resource) error {
	if res.OwnerID != actor.UserID {
		return shared.ErrForbidden
	}
	if !res.Mutable {
		return shared.ErrInvalidState
	}
	return nil
}
