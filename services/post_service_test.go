package services

import (
	"errors"
	"testing"

	"blogapi/models"
)

func TestCreatePostSlugs(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "Jane", "jane@example.com", "5551110001")
	tech := createCategory(t, db, "Technology")

	first := createPost(t, db, author.ID, tech.ID, "Hello, World!", models.PostStatusPublished)
	second := createPost(t, db, author.ID, tech.ID, "Hello World", models.PostStatusDraft)

	if first.Slug != "hello-world" {
		t.Errorf("first slug = %q", first.Slug)
	}
	if second.Slug != "hello-world-1" {
		t.Errorf("second slug = %q", second.Slug)
	}
	if first.PublishedAt == nil {
		t.Errorf("published post needs published_at")
	}
	if second.PublishedAt != nil {
		t.Errorf("draft must not have published_at")
	}
	if first.User == nil || first.Category == nil || first.Category.Name != "Technology" {
		t.Errorf("associations not loaded: %+v", first)
	}
}

func TestCreatePostTrimsInput(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "Jane", "jane@example.com", "5551110001")
	cat := createCategory(t, db, "Design")
	posts := NewPostService(db)

	cases := []struct {
		title, content, field string
	}{
		{"     ", "Content long enough", "title"},
		{"  ab  ", "Content long enough", "title"},
		{"Fine title", "   short    ", "content"},
	}
	for _, tc := range cases {
		_, err := posts.Create(author.ID, &models.CreatePostRequest{
			Title:      tc.title,
			Content:    tc.content,
			Status:     models.PostStatusDraft,
			CategoryID: cat.ID,
		})
		var fe *FieldError
		if !errors.As(err, &fe) || fe.Field != tc.field {
			t.Errorf("Create(%q, %q) err = %v, want %s field error", tc.title, tc.content, err, tc.field)
		}
	}

	post, err := posts.Create(author.ID, &models.CreatePostRequest{
		Title:      "  Padded title  ",
		Content:    "  Content long enough  ",
		Status:     models.PostStatusDraft,
		CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Title != "Padded title" || post.Content != "Content long enough" || post.Slug != "padded-title" {
		t.Errorf("post = %q %q %q", post.Title, post.Content, post.Slug)
	}
}

func TestCreatePostUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "Jane", "jane@example.com", "5551110001")

	_, err := NewPostService(db).Create(author.ID, &models.CreatePostRequest{
		Title:      "Orphan",
		Content:    "Content long enough",
		Status:     models.PostStatusDraft,
		CategoryID: 999,
	})
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "category_id" {
		t.Fatalf("err = %v, want category_id field error", err)
	}
}

func TestGetBySlugHidesDrafts(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "Jane", "jane@example.com", "5551110001")
	other := createUser(t, db, "Bob", "bob@example.com", "5551110002")
	cat := createCategory(t, db, "Design")
	draft := createPost(t, db, author.ID, cat.ID, "Secret plans", models.PostStatusDraft)

	posts := NewPostService(db)
	if _, err := posts.GetBySlug(draft.Slug, 0); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("anonymous err = %v", err)
	}
	if _, err := posts.GetBySlug(draft.Slug, other.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("other user err = %v", err)
	}
	if _, err := posts.GetBySlug(draft.Slug, author.ID); err != nil {
		t.Errorf("author err = %v", err)
	}
	if _, err := posts.GetBySlug("missing", author.ID); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

func TestUpdatePost(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "Jane", "jane@example.com", "5551110001")
	other := createUser(t, db, "Bob", "bob@example.com", "5551110002")
	cat := createCategory(t, db, "Design")
	post := createPost(t, db, author.ID, cat.ID, "First draft", models.PostStatusDraft)
	posts := NewPostService(db)

	if _, _, err := posts.Update(other.ID, post.Slug, &models.UpdatePostRequest{Title: strPtr("Hijack")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other user err = %v", err)
	}

	published := models.PostStatusPublished
	updated, becamePublished, err := posts.Update(author.ID, post.Slug, &models.UpdatePostRequest{
		Title:  strPtr("Final version"),
		Status: &published,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !becamePublished {
		t.Errorf("expected draft -> published transition")
	}
	if updated.Slug != "final-version" || updated.Content != post.Content {
		t.Errorf("unexpected post after update: slug=%q content=%q", updated.Slug, updated.Content)
	}
	if updated.PublishedAt == nil {
		t.Errorf("published_at not set")
	}

	// same title keeps the slug, republishing is not a transition
	again, becamePublished, err := posts.Update(author.ID, updated.Slug, &models.UpdatePostRequest{
		Title:  strPtr("Final version"),
		Status: &published,
	})
	if err != nil {
		t.Fatalf("Update again: %v", err)
	}
	if becamePublished || again.Slug != "final-version" {
		t.Errorf("becamePublished=%v slug=%q", becamePublished, again.Slug)
	}

	draft := models.PostStatusDraft
	back, _, err := posts.Update(author.ID, again.Slug, &models.UpdatePostRequest{Status: &draft})
	if err != nil {
		t.Fatalf("Update to draft: %v", err)
	}
	if back.PublishedAt != nil {
		t.Errorf("published_at should be cleared on unpublish")
	}

	var fe *FieldError
	if _, _, err := posts.Update(author.ID, back.Slug, &models.UpdatePostRequest{Title: strPtr("  ab  ")}); !errors.As(err, &fe) || fe.Field != "title" {
		t.Errorf("short title err = %v", err)
	}

	if _, _, err := posts.Update(author.ID, "nope", &models.UpdatePostRequest{}); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("missing err = %v", err)
	}
}

func TestListPublishedFilters(t *testing.T) {
	db := newTestDB(t)
	jane := createUser(t, db, "Jane", "jane@example.com", "5551110001")
	bob := createUser(t, db, "Bob", "bob@example.com", "5551110002")
	tech := createCategory(t, db, "Technology")
	design := createCategory(t, db, "Design")

	createPost(t, db, jane.ID, tech.ID, "Go generics in practice", models.PostStatusPublished)
	createPost(t, db, jane.ID, design.ID, "Colour theory", models.PostStatusPublished)
	createPost(t, db, bob.ID, tech.ID, "Rust and Go", models.PostStatusPublished)
	createPost(t, db, bob.ID, tech.ID, "Unfinished Go notes", models.PostStatusDraft)

	posts := NewPostService(db)

	all, err := posts.ListPublished(models.PostFilter{})
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if all.Total != 3 || all.PerPage != DefaultPerPage || all.CurrentPage != 1 {
		t.Errorf("all = total %d per_page %d page %d", all.Total, all.PerPage, all.CurrentPage)
	}

	byCategory, _ := posts.ListPublished(models.PostFilter{Category: "technology"})
	if byCategory.Total != 2 {
		t.Errorf("technology total = %d, want 2", byCategory.Total)
	}

	bySearch, _ := posts.ListPublished(models.PostFilter{Search: "go"})
	if bySearch.Total != 2 {
		t.Errorf("search total = %d, want 2", bySearch.Total)
	}

	byAuthor, _ := posts.ListPublished(models.PostFilter{AuthorID: bob.ID})
	if byAuthor.Total != 1 {
		t.Errorf("author total = %d, want 1", byAuthor.Total)
	}

	paged, _ := posts.ListPublished(models.PostFilter{Page: 2, PerPage: 2})
	if len(paged.Data) != 1 || paged.LastPage != 2 {
		t.Errorf("page 2 = %d items, last_page %d", len(paged.Data), paged.LastPage)
	}

	capped, _ := posts.ListPublished(models.PostFilter{PerPage: 1000})
	if capped.PerPage != MaxPerPage {
		t.Errorf("per_page = %d, want %d", capped.PerPage, MaxPerPage)
	}

	mine, _ := posts.ListByAuthor(bob.ID, models.PostFilter{})
	if mine.Total != 2 {
		t.Errorf("bob's posts = %d, want 2", mine.Total)
	}
	drafts, _ := posts.ListByAuthor(bob.ID, models.PostFilter{Status: "draft"})
	if drafts.Total != 1 {
		t.Errorf("bob's drafts = %d, want 1", drafts.Total)
	}
}

func TestTrashLifecycle(t *testing.T) {
	db := newTestDB(t)
	jane := createUser(t, db, "Jane", "jane@example.com", "5551110001")
	bob := createUser(t, db, "Bob", "bob@example.com", "5551110002")
	cat := createCategory(t, db, "Design")
	post := createPost(t, db, jane.ID, cat.ID, "Disposable", models.PostStatusPublished)
	posts := NewPostService(db)

	if _, _, err := NewCommentService(db).Create(bob.ID, post.Slug, &models.CommentRequest{Content: "nice"}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := posts.Delete(bob.ID, post.Slug); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by other err = %v", err)
	}
	if err := posts.ForceDelete(jane.ID, post.Slug); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("force delete of live post err = %v", err)
	}
	if err := posts.Delete(jane.ID, post.Slug); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := posts.GetBySlug(post.Slug, jane.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("trashed post still visible: %v", err)
	}

	trashed, err := posts.ListTrashed(jane.ID)
	if err != nil || len(trashed) != 1 || trashed[0].ID != post.ID {
		t.Fatalf("ListTrashed = %v, %v", trashed, err)
	}
	if others, _ := posts.ListTrashed(bob.ID); len(others) != 0 {
		t.Fatalf("bob sees %d trashed posts", len(others))
	}

	// trashed posts keep their slug
	dup := createPost(t, db, jane.ID, cat.ID, "Disposable", models.PostStatusDraft)
	if dup.Slug != "disposable-1" {
		t.Errorf("slug = %q, want disposable-1", dup.Slug)
	}

	restored, err := posts.Restore(jane.ID, post.Slug)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.DeletedAt.Valid {
		t.Errorf("restored post still trashed")
	}
	if _, err := posts.Restore(jane.ID, post.Slug); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("restore of live post err = %v", err)
	}

	if err := posts.Delete(jane.ID, post.Slug); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := posts.ForceDelete(bob.ID, post.Slug); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("force delete by other err = %v", err)
	}
	if err := posts.ForceDelete(jane.ID, post.Slug); err != nil {
		t.Fatalf("ForceDelete: %v", err)
	}

	var remaining int64
	db.Unscoped().Model(&models.Post{}).Where("id = ?", post.ID).Count(&remaining)
	if remaining != 0 {
		t.Errorf("post row survived force delete")
	}
	var comments int64
	db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
	if comments != 0 {
		t.Errorf("%d comments survived force delete", comments)
	}
}
