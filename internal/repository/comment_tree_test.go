package repository

import (
	"reflect"
	"testing"
	"time"
)

func ptr(v uint64) *uint64 { return &v }

// flatComments builds rows in creation order: id 1 and 4 are roots, 2 and 3
// nest under 1.
func flatComments() []Comment {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []Comment{
		{ID: 1, PropertyID: 9, UserID: 11, Body: "top one", CreatedAt: base},
		{ID: 2, PropertyID: 9, UserID: 12, Body: "reply to one", ParentID: ptr(1), CreatedAt: base.Add(time.Minute)},
		{ID: 3, PropertyID: 9, UserID: 13, Body: "nested reply", ParentID: ptr(2), CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, PropertyID: 9, UserID: 11, Body: "top two", CreatedAt: base.Add(3 * time.Minute)},
	}
}

func TestBuildForestShape(t *testing.T) {
	forest := BuildForest(flatComments())
	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	if forest[0].ID != 1 || forest[1].ID != 4 {
		t.Errorf("roots out of order: %d, %d", forest[0].ID, forest[1].ID)
	}
	if len(forest[0].Replies) != 1 || forest[0].Replies[0].ID != 2 {
		t.Fatalf("comment 2 should nest under 1")
	}
	if len(forest[0].Replies[0].Replies) != 1 || forest[0].Replies[0].Replies[0].ID != 3 {
		t.Fatalf("comment 3 should nest under 2")
	}
	if forest[0].Depth != 0 || forest[0].Replies[0].Depth != 1 || forest[0].Replies[0].Replies[0].Depth != 2 {
		t.Error("depths wrong")
	}
}

// Building twice from the same input must produce structurally identical
// forests: same groupings, same order.
func TestBuildForestIdempotent(t *testing.T) {
	rows := flatComments()
	first := BuildForest(rows)
	second := BuildForest(rows)
	if !reflect.DeepEqual(first, second) {
		t.Error("two builds from the same rows differ")
	}
}

// A node at depth 10 renders with the same indent as one at depth 6.
func TestBuildForestIndentCap(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []Comment{{ID: 1, Body: "root", CreatedAt: base}}
	for i := uint64(2); i <= 11; i++ {
		parent := i - 1
		rows = append(rows, Comment{
			ID: i, Body: "nested", ParentID: ptr(parent),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	forest := BuildForest(rows)
	if len(forest) != 1 {
		t.Fatalf("expected a single root chain")
	}
	node := forest[0]
	for len(node.Replies) > 0 {
		node = node.Replies[0]
	}
	if node.Depth != 10 {
		t.Fatalf("expected leaf depth 10, got %d", node.Depth)
	}
	if node.IndentLevel != MaxIndentLevel {
		t.Errorf("leaf indent = %d, want cap %d", node.IndentLevel, MaxIndentLevel)
	}
}

// Replies whose parent row was deleted are unreachable from any root and
// vanish from the forest; they must not surface as top-level comments.
func TestBuildForestOrphansDropOut(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []Comment{
		{ID: 1, Body: "root", CreatedAt: base},
		{ID: 5, Body: "orphan", ParentID: ptr(99), CreatedAt: base.Add(time.Minute)},
	}
	forest := BuildForest(rows)
	if len(forest) != 1 || forest[0].ID != 1 {
		t.Fatalf("orphan leaked into the forest: %+v", forest)
	}
}

func TestBuildForestSiblingOrderPreserved(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []Comment{
		{ID: 1, Body: "root", CreatedAt: base},
		{ID: 2, Body: "first reply", ParentID: ptr(1), CreatedAt: base.Add(time.Minute)},
		{ID: 3, Body: "second reply", ParentID: ptr(1), CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, Body: "third reply", ParentID: ptr(1), CreatedAt: base.Add(3 * time.Minute)},
	}
	forest := BuildForest(rows)
	got := []uint64{}
	for _, reply := range forest[0].Replies {
		got = append(got, reply.ID)
	}
	want := []uint64{2, 3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sibling order: got %v, want %v", got, want)
	}
}

func TestBuildForestEmptyInput(t *testing.T) {
	forest := BuildForest(nil)
	if len(forest) != 0 {
		t.Errorf("expected empty forest, got %d nodes", len(forest))
	}
}
