package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/HerosSMP/Heros-shop.de/internal/apperror"
	"github.com/HerosSMP/Heros-shop.de/internal/model"
)

func createTestText(t *testing.T, db *DB, key, value string) *model.SiteText {
	t.Helper()
	text := &model.SiteText{Key: key, Value: value, Description: "test text"}
	if err := db.SiteTexts.Create(context.Background(), text); err != nil {
		t.Fatalf("failed to create test text: %v", err)
	}
	return text
}

func TestSiteTextCreateAndList(t *testing.T) {
	db := newTestDB(t)

	createTestText(t, db, "site_title", "MINECRAFT SHOP")
	createTestText(t, db, "footer_text", "© 2024")

	texts, err := db.SiteTexts.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("List() returned %d texts, want 2", len(texts))
	}

	// xid ids sort by creation time, so List keeps seed order.
	if texts[0].Key != "site_title" || texts[1].Key != "footer_text" {
		t.Errorf("List order = [%s, %s], want [site_title, footer_text]", texts[0].Key, texts[1].Key)
	}
}

func TestSiteTextGetValue(t *testing.T) {
	db := newTestDB(t)
	createTestText(t, db, "hero_title", "MINECRAFT SERVER SHOP")

	value, err := db.SiteTexts.GetValue(context.Background(), "hero_title")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if value != "MINECRAFT SERVER SHOP" {
		t.Errorf("GetValue() = %q, want %q", value, "MINECRAFT SERVER SHOP")
	}
}

// An unknown key falls back to the key itself instead of erroring — the
// storefront renders whatever comes back.
func TestSiteTextGetValue_UnknownKeyFallsBack(t *testing.T) {
	db := newTestDB(t)

	value, err := db.SiteTexts.GetValue(context.Background(), "no_such_key")
	if err != nil {
		t.Fatalf("GetValue() error = %v, want nil (fallback, not error)", err)
	}
	if value != "no_such_key" {
		t.Errorf("GetValue() = %q, want the key itself", value)
	}
}

func TestSiteTextGetValue_EmptyValueIsNotFallback(t *testing.T) {
	db := newTestDB(t)
	createTestText(t, db, "hero_description", "")

	// A blanked-out text returns "", not the key — fallback only applies to
	// keys that don't exist at all.
	value, err := db.SiteTexts.GetValue(context.Background(), "hero_description")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if value != "" {
		t.Errorf("GetValue() = %q, want empty string", value)
	}
}

func TestSiteTextUpdateValue(t *testing.T) {
	db := newTestDB(t)
	createTestText(t, db, "products_title", "UNSERE ARTIKEL")

	if err := db.SiteTexts.UpdateValue(context.Background(), "products_title", "NEUE ARTIKEL"); err != nil {
		t.Fatalf("UpdateValue() error = %v", err)
	}

	value, _ := db.SiteTexts.GetValue(context.Background(), "products_title")
	if value != "NEUE ARTIKEL" {
		t.Errorf("value after update = %q, want %q", value, "NEUE ARTIKEL")
	}
}

// Unlike GetValue, writing to an unknown key is an error.
func TestSiteTextUpdateValue_UnknownKey(t *testing.T) {
	db := newTestDB(t)

	err := db.SiteTexts.UpdateValue(context.Background(), "no_such_key", "value")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateValue() error = %v, want ErrNotFound", err)
	}
}

func TestSiteTextCreate_DuplicateKey(t *testing.T) {
	db := newTestDB(t)
	createTestText(t, db, "site_title", "first")

	err := db.SiteTexts.Create(context.Background(), &model.SiteText{Key: "site_title", Value: "second"})
	if err == nil {
		t.Fatal("Create() with duplicate key should fail on the UNIQUE constraint")
	}
}

func TestSiteTextDelete(t *testing.T) {
	db := newTestDB(t)
	text := createTestText(t, db, "obsolete", "x")

	if err := db.SiteTexts.Delete(context.Background(), text.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Reads of the deleted key now fall back.
	value, err := db.SiteTexts.GetValue(context.Background(), "obsolete")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if value != "obsolete" {
		t.Errorf("GetValue() after delete = %q, want the key itself", value)
	}
}
