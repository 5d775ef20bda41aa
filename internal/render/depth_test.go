package render

import "testing"

func TestDepthSort_AscendingYStable(t *testing.T) {
	ents := []Entity{
		newFakeEntity(0, 0, 5),
		newFakeEntity(1, 0, 1),
		newFakeEntity(2, 0, 5),
		newFakeEntity(3, 0, 3),
	}
	got := depthSort(nil, ents, "")
	want := []int{1, 3, 0, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i, e := range got {
		if id := e.(*fakeEntity).id; id != want[i] {
			t.Fatalf("position %d: expected entity %d, got %d", i, want[i], id)
		}
	}
}

func TestDepthSort_SkipsTag(t *testing.T) {
	ents := []Entity{
		newFakeEntity(0, 0, 2),
		newFakeEntity(1, 0, 1, TagFloor),
		newFakeEntity(2, 0, 0),
	}
	got := depthSort(nil, ents, TagFloor)
	if len(got) != 2 {
		t.Fatalf("floor entity should be skipped, got %d entities", len(got))
	}
	for _, e := range got {
		if e.HasTag(TagFloor) {
			t.Fatal("floor entity present in depth order")
		}
	}
}

func TestDepthSort_DoesNotReorderInput(t *testing.T) {
	ents := []Entity{newFakeEntity(0, 0, 9), newFakeEntity(1, 0, 1)}
	depthSort(nil, ents, "")
	if ents[0].(*fakeEntity).id != 0 {
		t.Fatal("input slice was reordered")
	}
}
