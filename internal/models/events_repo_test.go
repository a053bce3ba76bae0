package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestID(b byte) primitive.ObjectID {
	var id primitive.ObjectID
	id[11] = b
	return id
}

func TestBuildEventQueryDefaultsToPublicPublished(t *testing.T) {
	query := BuildEventQuery(EventFilter{})

	if query["is_active"] != true {
		t.Error("Default query must restrict to active events")
	}
	if query["visibility"] != VisibilityPublic {
		t.Errorf("Default visibility should be public, got %v", query["visibility"])
	}
	if query["status"] != StatusPublished {
		t.Errorf("Default status should be published, got %v", query["status"])
	}
}

func TestBuildEventQueryTrendingMeansFeatured(t *testing.T) {
	query := BuildEventQuery(EventFilter{Category: CategoryTrending})

	if query["is_featured"] != true {
		t.Error("Trending category should filter on is_featured")
	}
	if _, exists := query["category"]; exists {
		t.Error("Trending should not be matched as a literal category")
	}
}

func TestBuildEventQueryAllCategoryIsNoop(t *testing.T) {
	query := BuildEventQuery(EventFilter{Category: "All"})

	if _, exists := query["category"]; exists {
		t.Error("Category 'All' should not add a category filter")
	}
}

func TestBuildEventQuerySearchUsesTextIndex(t *testing.T) {
	query := BuildEventQuery(EventFilter{Search: "jazz night"})

	text, ok := query["$text"].(bson.M)
	if !ok {
		t.Fatal("Search should produce a $text clause")
	}
	if text["$search"] != "jazz night" {
		t.Errorf("Unexpected $search value: %v", text["$search"])
	}
}

func TestEventPermissionHelpers(t *testing.T) {
	organizer := newTestID(1)
	editor := newTestID(2)
	canceller := newTestID(3)
	stranger := newTestID(4)

	event := Event{
		Organizer: Organizer{UserID: organizer},
		CoHosts: []CoHost{
			{UserID: editor, Permissions: CoHostPermissions{CanEdit: true}},
			{UserID: canceller, Permissions: CoHostPermissions{CanCancel: true}},
		},
	}

	if !event.IsOrganizer(organizer) {
		t.Error("Organizer not recognized")
	}
	if !event.CoHostCanEdit(editor) {
		t.Error("Co-host with canEdit should be allowed to edit")
	}
	if event.CoHostCanEdit(canceller) {
		t.Error("Co-host without canEdit must not edit")
	}
	if !event.CoHostCanCancel(canceller) {
		t.Error("Co-host with canCancel should be allowed to cancel")
	}
	if event.CoHostCanEdit(stranger) || event.CoHostCanCancel(stranger) {
		t.Error("Non-co-host must have no permissions")
	}
}
