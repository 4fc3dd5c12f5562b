package services

import (
	"errors"
	"testing"

	"blogapi/models"
)

func TestGetUserByIDShowsPublishedPosts(t *testing.T) {
	db := newTestDB(t)
	jane := createUser(t, db, "Jane", "jane@example.com", "5551110001")
	cat := createCategory(t, db, "Design")
	createPost(t, db, jane.ID, cat.ID, "Public thoughts", models.PostStatusPublished)
	createPost(t, db, jane.ID, cat.ID, "Private thoughts", models.PostStatusDraft)

	users := NewUserService(db)
	user, err := users.GetUserByID(jane.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if len(user.Posts) != 1 || user.Posts[0].Slug != "public-thoughts" {
		t.Errorf("posts = %+v", user.Posts)
	}
	if _, err := users.GetUserByID(999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user err = %v", err)
	}
	if found, err := users.GetUserByEmail("JANE@example.com"); err != nil || found.ID != jane.ID {
		t.Errorf("GetUserByEmail = %v, %v", found, err)
	}
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)
	jane := createUser(t, db, "Jane", "jane@example.com", "+16502530010")
	createUser(t, db, "Bob", "bob@example.com", "+16502530011")
	users := NewUserService(db)

	updated, err := users.UpdateUser(jane.ID, &models.UpdateUserRequest{
		Name: strPtr("jane  smith"),
		Bio:  strPtr("Writes about Go."),
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Jane Smith" || updated.Bio == nil || *updated.Bio != "Writes about Go." {
		t.Errorf("updated = %+v", updated)
	}

	// keeping one's own phone is fine
	if _, err := users.UpdateUser(jane.ID, &models.UpdateUserRequest{Phone: strPtr("+1 650-253-0010")}); err != nil {
		t.Fatalf("same phone: %v", err)
	}

	_, err = users.UpdateUser(jane.ID, &models.UpdateUserRequest{Phone: strPtr("+1 (650) 253-0011")})
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "phone" {
		t.Fatalf("taken phone err = %v", err)
	}

	if _, err := users.UpdateUser(jane.ID, &models.UpdateUserRequest{Name: strPtr("  ")}); !errors.As(err, &fe) || fe.Field != "name" {
		t.Fatalf("blank name err = %v", err)
	}

	moved, err := users.UpdateUser(jane.ID, &models.UpdateUserRequest{Phone: strPtr("+44 7400 123456")})
	if err != nil || moved.Phone != "+447400123456" {
		t.Fatalf("new phone = %+v, %v", moved, err)
	}
}

func TestDeleteUser(t *testing.T) {
	db := newTestDB(t)
	cfg := testConfig(t)
	auth := NewAuthService(db, cfg, newRecordingMailer())

	resp, err := auth.Register(registerRequest("jane@example.com", "+16502530012"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	cat := createCategory(t, db, "Design")
	createPost(t, db, resp.User.ID, cat.ID, "Soon gone", models.PostStatusPublished)

	users := NewUserService(db)
	if err := users.DeleteUser(resp.User.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := users.GetUserByID(resp.User.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("deleted user err = %v", err)
	}
	if _, _, err := auth.Authenticate(resp.Token); !errors.Is(err, ErrSessionInvalid) {
		t.Errorf("token of deleted user err = %v", err)
	}
	var live int64
	db.Model(&models.Post{}).Where("user_id = ?", resp.User.ID).Count(&live)
	if live != 0 {
		t.Errorf("%d posts still live", live)
	}
	if err := users.DeleteUser(resp.User.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}
