package repository

import "time"

// MaxIndentLevel caps the visual indent assigned to deeply nested replies.
// Nodes deeper than this still nest structurally but render at the cap so
// long reply chains cannot collapse the layout.
const MaxIndentLevel = 6

// CommentNode is one rendered comment with its direct replies attached.
type CommentNode struct {
	ID           uint64         `json:"id"`
	UserID       uint64         `json:"user_id"`
	AuthorName   string         `json:"author_name"`
	AuthorAvatar string         `json:"author_avatar,omitempty"`
	Body         string         `json:"body"`
	CreatedAt    time.Time      `json:"created_at"`
	Depth        int            `json:"depth"`
	IndentLevel  int            `json:"indent_level"`
	Replies      []*CommentNode `json:"replies"`
}

// BuildForest converts flat, creation-ordered comment rows into a forest of
// reply trees. Rows are kept in a flat arena keyed by id with a separate
// parent -> children index; the forest is assembled by recursive lookup into
// the arena rather than by nesting owned structures. Replies whose parent
// row is missing (parent deleted) are unreachable from any root and thus
// silently drop out of the forest.
func BuildForest(rows []Comment) []*CommentNode {
	arena := make(map[uint64]*CommentNode, len(rows))
	children := make(map[uint64][]uint64)
	var roots []uint64

	for _, row := range rows {
		node := &CommentNode{
			ID:         row.ID,
			UserID:     row.UserID,
			AuthorName: row.AuthorName,
			Body:       row.Body,
			CreatedAt:  row.CreatedAt,
			Replies:    []*CommentNode{},
		}
		if row.AuthorAvatar.Valid {
			node.AuthorAvatar = row.AuthorAvatar.String
		}
		arena[row.ID] = node
		if row.ParentID == nil {
			roots = append(roots, row.ID)
		} else {
			children[*row.ParentID] = append(children[*row.ParentID], row.ID)
		}
	}

	var attach func(id uint64, depth int) *CommentNode
	attach = func(id uint64, depth int) *CommentNode {
		node := arena[id]
		node.Depth = depth
		node.IndentLevel = depth
		if node.IndentLevel > MaxIndentLevel {
			node.IndentLevel = MaxIndentLevel
		}
		for _, childID := range children[id] {
			node.Replies = append(node.Replies, attach(childID, depth+1))
		}
		return node
	}

	forest := make([]*CommentNode, 0, len(roots))
	for _, id := range roots {
		forest = append(forest, attach(id, 0))
	}
	return forest
}
