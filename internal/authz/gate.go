// Package authz holds the authorization rules for message and relationship
// access. The predicates are pure; the Authorize helpers additionally record
// denials and return the corresponding application error.
package authz

import (
	"chirp/internal/models"
	"chirp/internal/observability"
)

// CanDeleteMessage reports whether actorID may delete a message authored by
// authorID. Only the author may delete.
func CanDeleteMessage(actorID, authorID uint) bool {
	return actorID == authorID
}

// CanLikeMessage reports whether actorID may like a message authored by
// authorID. Authors cannot like their own messages.
func CanLikeMessage(actorID, authorID uint) bool {
	return actorID != authorID
}

// CanViewRelations reports whether a viewer may read follower/following
// lists. Any authenticated user qualifies.
func CanViewRelations(viewerID uint) bool {
	return viewerID != 0
}

// AuthorizeDelete returns nil when actorID may delete the message, otherwise
// a NOT_AUTHOR error.
func AuthorizeDelete(actorID, authorID uint) error {
	if !CanDeleteMessage(actorID, authorID) {
		observability.AuthorizationDenials.WithLabelValues("delete_message").Inc()
		return models.NewNotAuthorError()
	}
	return nil
}

// AuthorizeLike returns nil when actorID may like the message, otherwise a
// SELF_LIKE error.
func AuthorizeLike(actorID, authorID uint) error {
	if !CanLikeMessage(actorID, authorID) {
		observability.AuthorizationDenials.WithLabelValues("like_message").Inc()
		return models.NewSelfLikeError()
	}
	return nil
}
