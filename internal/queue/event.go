// Package queue contains the comment.posted event shape and the background
// consumer that turns those events into notification rows.
package queue

// CommentPostedEvent is published whenever someone comments on a listing
// they do not own. The preview is a short excerpt of the comment body shown
// in the owner's notification feed.
type CommentPostedEvent struct {
	CommentID  uint64 `json:"comment_id"`
	PropertyID uint64 `json:"property_id"`
	OwnerID    uint64 `json:"owner_id"`
	ActorID    uint64 `json:"actor_id"`
	ActorName  string `json:"actor_name"`
	Preview    string `json:"preview"`
	CreatedAt  string `json:"created_at"` // UTC, RFC3339
}
