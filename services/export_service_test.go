package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"blogapi/models"

	"github.com/andreyvit/diff"
	"github.com/xuri/excelize/v2"
)

func exportFixture() []models.Post {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	published := time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)
	return []models.Post{
		{
			ID:          2,
			Title:       "Commas, quotes \"and\" more",
			Slug:        "commas-quotes-and-more",
			Status:      models.PostStatusPublished,
			PublishedAt: &published,
			Category:    &models.Category{Name: "Programming"},
			CreatedAt:   created,
		},
		{
			ID:        1,
			Title:     "Plain draft",
			Slug:      "plain-draft",
			Status:    models.PostStatusDraft,
			CreatedAt: created,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExportService(nil).WriteCSV(&buf, exportFixture()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := strings.Join([]string{
		"ID,Title,Slug,Status,Category,Published At,Created At",
		`2,"Commas, quotes ""and"" more",commas-quotes-and-more,published,Programming,2024-03-02 18:00,2024-03-01 09:30`,
		"1,Plain draft,plain-draft,draft,,,2024-03-01 09:30",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("csv mismatch:\n%s", diff.LineDiff(want, got))
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExportService(nil).WriteXLSX(&buf, exportFixture()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ExportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	got := strings.Join(rows[0], "|") + "\n" + strings.Join(rows[1], "|")
	want := "ID|Title|Slug|Status|Category|Published At|Created At\n" +
		`2|Commas, quotes "and" more|commas-quotes-and-more|published|Programming|2024-03-02 18:00|2024-03-01 09:30`
	if got != want {
		t.Errorf("xlsx mismatch:\n%s", diff.LineDiff(want, got))
	}

	if width, err := f.GetColWidth(ExportSheet, "B"); err != nil || width != 40 {
		t.Errorf("title column width = %v, %v", width, err)
	}
}

func TestAuthorPosts(t *testing.T) {
	db := newTestDB(t)
	jane := createUser(t, db, "Jane", "jane@example.com", "5551110001")
	bob := createUser(t, db, "Bob", "bob@example.com", "5551110002")
	cat := createCategory(t, db, "Programming")

	createPost(t, db, jane.ID, cat.ID, "Mine published", models.PostStatusPublished)
	createPost(t, db, jane.ID, cat.ID, "Mine draft", models.PostStatusDraft)
	gone := createPost(t, db, jane.ID, cat.ID, "Mine trashed", models.PostStatusDraft)
	createPost(t, db, bob.ID, cat.ID, "Not mine", models.PostStatusPublished)
	if err := NewPostService(db).Delete(jane.ID, gone.Slug); err != nil {
		t.Fatal(err)
	}

	posts, err := NewExportService(db).AuthorPosts(jane.ID)
	if err != nil {
		t.Fatalf("AuthorPosts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	for _, p := range posts {
		if p.Category == nil || p.Category.Name != "Programming" {
			t.Errorf("category not loaded for %q", p.Slug)
		}
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	if got := ExportFilename("csv", now); got != "posts_20240506.csv" {
		t.Errorf("ExportFilename = %q", got)
	}
}
