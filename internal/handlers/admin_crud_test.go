package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bidhinews/internal/session"
)

// adminSession returns a 2FA-complete admin session bound to the seeded user.
func adminSession(t *testing.T, env *testEnv) *session.Data {
	t.Helper()
	uid := seedUserID(t, env.DB)
	return testSession(uid, "admin@bidhinews.local", "admin", true)
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestPostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	sess := adminSession(t, env)
	cleanPosts(t, env.DB, "Lifecycle Story", "Lifecycle Story Renamed")

	// Create: always lands as a draft with a generated slug.
	rec := httptest.NewRecorder()
	req := withSession(postJSON("/admin/api/posts", `{
		"name": "Lifecycle Story",
		"description": "<p>body</p>",
		"author": "Reporter",
		"keywords": ["one", "two"],
		"isHot": true
	}`), sess)
	env.Admin.PostCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created postView
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	t.Cleanup(func() { env.Posts.Delete(created.ID) })

	if created.Status != "draft" {
		t.Errorf("status = %q, want draft", created.Status)
	}
	if created.PostSlug != "lifecycle-story" {
		t.Errorf("postSlug = %q, want lifecycle-story", created.PostSlug)
	}
	if created.CreatedBy == nil || created.CreatedBy.Email != sess.Email {
		t.Error("createdBy stamp missing or wrong")
	}
	if created.PublishedBy != nil {
		t.Error("publishedBy must not be set at create")
	}
	if created.CreatedAt == 0 {
		t.Error("createdAt must be epoch milliseconds, got 0")
	}

	// Update: rename keeps the slug and the draft status.
	rec = httptest.NewRecorder()
	req = withChiParam(withSession(httptest.NewRequest(http.MethodPut, "/admin/api/posts/"+created.ID,
		strings.NewReader(`{"name": "Lifecycle Story Renamed", "description": "<p>body</p>"}`)), sess), "id", created.ID)
	env.Admin.PostUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	var updated postView
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Name != "Lifecycle Story Renamed" {
		t.Errorf("name = %q after update", updated.Name)
	}
	if updated.PostSlug != "lifecycle-story" {
		t.Errorf("postSlug = %q, rename must not regenerate it", updated.PostSlug)
	}
	if updated.Status != "draft" {
		t.Errorf("status = %q, update must not publish", updated.Status)
	}

	// Publish: stamps publishedBy once.
	rec = httptest.NewRecorder()
	req = withChiParam(withSession(httptest.NewRequest(http.MethodPost, "/admin/api/posts/"+created.ID+"/publish", nil), sess), "id", created.ID)
	env.Admin.PostPublish(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("publish status = %d: %s", rec.Code, rec.Body.String())
	}
	var published postView
	json.Unmarshal(rec.Body.Bytes(), &published)
	if published.Status != "published" {
		t.Errorf("status = %q, want published", published.Status)
	}
	if published.PublishedBy == nil || published.PublishedBy.Email != sess.Email {
		t.Fatal("publishedBy stamp missing")
	}
	firstStamp := published.PublishedBy.At

	// Republish: the original stamp survives.
	rec = httptest.NewRecorder()
	req = withChiParam(withSession(httptest.NewRequest(http.MethodPost, "/admin/api/posts/"+created.ID+"/publish", nil), sess), "id", created.ID)
	env.Admin.PostPublish(rec, req)
	var republished postView
	json.Unmarshal(rec.Body.Bytes(), &republished)
	if republished.PublishedBy.At != firstStamp {
		t.Error("republish overwrote the publishedBy stamp")
	}

	// Delete, then the post is gone.
	rec = httptest.NewRecorder()
	req = withChiParam(withSession(httptest.NewRequest(http.MethodDelete, "/admin/api/posts/"+created.ID, nil), sess), "id", created.ID)
	env.Admin.PostDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = withChiParam(withSession(httptest.NewRequest(http.MethodGet, "/admin/api/posts/"+created.ID, nil), sess), "id", created.ID)
	env.Admin.PostGet(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestPostCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	sess := adminSession(t, env)

	rec := httptest.NewRecorder()
	req := withSession(postJSON("/admin/api/posts", `{"name": "   "}`), sess)
	env.Admin.PostCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty title", rec.Code)
	}
}

func TestCategoryCreateConflictAndValidation(t *testing.T) {
	env := newTestEnv(t)
	cleanCategories(t, env.DB, "crudtest-science")

	rec := httptest.NewRecorder()
	env.Admin.CategoryCreate(rec, postJSON("/admin/api/categories", `{"name": "CrudTest Science"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created categoryView
	json.Unmarshal(rec.Body.Bytes(), &created)
	t.Cleanup(func() { env.Categories.Delete(created.Slug) })

	if created.Slug != "crudtest-science" {
		t.Errorf("slug = %q", created.Slug)
	}

	t.Run("duplicate slug conflicts", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.Admin.CategoryCreate(rec, postJSON("/admin/api/categories", `{"name": "CrudTest   Science"}`))
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("too short name rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.Admin.CategoryCreate(rec, postJSON("/admin/api/categories", `{"name": "X"}`))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("symbol-only name rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		env.Admin.CategoryCreate(rec, postJSON("/admin/api/categories", `{"name": "!!!"}`))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestCategoriesReorder(t *testing.T) {
	env := newTestEnv(t)
	seedUserID(t, env.DB) // ensure seeded categories exist

	cats, err := env.Categories.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cats) < 2 {
		t.Skip("need at least two categories to reorder")
	}

	original := make([]string, len(cats))
	for i, c := range cats {
		original[i] = c.Slug
	}
	reversed := make([]string, len(original))
	for i, s := range original {
		reversed[len(original)-1-i] = s
	}
	t.Cleanup(func() { env.Categories.Reorder(original) })

	body, _ := json.Marshal(map[string][]string{"slugs": reversed})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/admin/api/categories/reorder", strings.NewReader(string(body)))
	env.Admin.CategoriesReorder(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var after []categoryView
	json.Unmarshal(rec.Body.Bytes(), &after)
	if after[0].Slug != reversed[0] {
		t.Errorf("first slug = %q, want %q", after[0].Slug, reversed[0])
	}
	for i, c := range after {
		if c.Order != i {
			t.Errorf("order[%d] = %d, want dense renumbering", i, c.Order)
		}
	}

	t.Run("partial list rejected", func(t *testing.T) {
		body, _ := json.Marshal(map[string][]string{"slugs": reversed[:1]})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/admin/api/categories/reorder", strings.NewReader(string(body)))
		env.Admin.CategoriesReorder(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestCategoryDelete(t *testing.T) {
	env := newTestEnv(t)
	cleanCategories(t, env.DB, "crudtest-doomed")

	rec := httptest.NewRecorder()
	env.Admin.CategoryCreate(rec, postJSON("/admin/api/categories", `{"name": "CrudTest Doomed"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := withChiParam(httptest.NewRequest(http.MethodDelete, "/admin/api/categories/crudtest-doomed", nil), "slug", "crudtest-doomed")
	env.Admin.CategoryDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = withChiParam(httptest.NewRequest(http.MethodDelete, "/admin/api/categories/crudtest-doomed", nil), "slug", "crudtest-doomed")
	env.Admin.CategoryDelete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestMediaEndpointsWithoutStorage(t *testing.T) {
	env := newTestEnv(t)
	sess := adminSession(t, env)

	rec := httptest.NewRecorder()
	env.Admin.MediaUpload(rec, withSession(postJSON("/admin/api/media", `{}`), sess))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("upload status = %d, want 503 without storage", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.Admin.MediaList(rec, httptest.NewRequest(http.MethodGet, "/admin/api/media", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("list status = %d, want 503 without storage", rec.Code)
	}
}
