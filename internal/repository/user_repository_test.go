package repository

import (
	"testing"
	"time"

	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) (*GormUserRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate users failed: %v", err)
	}
	return NewUserRepository(db), db
}

func TestUserGetByEmailNormalizesCase(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := &models.User{
		Name:         "Email Case",
		Email:        "case-check@example.com",
		PasswordHash: "x",
		Role:         constants.RoleAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	got, err := repo.GetByEmail("  Case-Check@Example.COM ")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("get by email want id=%d got %+v", user.ID, got)
	}
}

func TestUserGetByResetToken(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	token := "reset-token-abc123"
	expires := time.Now().Add(10 * time.Minute)
	user := &models.User{
		Name:                "Reset Target",
		Email:               "reset-target@example.com",
		PasswordHash:        "x",
		Role:                constants.RoleAdmin,
		ResetToken:          &token,
		ResetTokenExpiresAt: &expires,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	got, err := repo.GetByResetToken(token)
	if err != nil {
		t.Fatalf("get by reset token failed: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("get by reset token want id=%d got %+v", user.ID, got)
	}

	got, err = repo.GetByResetToken("")
	if err != nil {
		t.Fatalf("empty token lookup failed: %v", err)
	}
	if got != nil {
		t.Fatalf("empty token should return nil, got %+v", got)
	}
}

func TestUserListKeywordAndRoleFilter(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	seed := []models.User{
		{Name: "Filter Alice", Email: "filter-alice@example.com", PasswordHash: "x", Role: constants.RoleSuperAdmin},
		{Name: "Filter Bob", Email: "filter-bob@example.com", PasswordHash: "x", Role: constants.RoleAdmin},
		{Name: "Other Carol", Email: "other-carol@example.com", PasswordHash: "x", Role: constants.RoleAdmin},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	users, total, err := repo.List(UserListFilter{Page: 1, PageSize: 10, Keyword: "filter-"})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("keyword total want 2 got %d", total)
	}
	if len(users) != 2 {
		t.Fatalf("keyword len want 2 got %d", len(users))
	}

	users, total, err = repo.List(UserListFilter{Page: 1, PageSize: 10, Keyword: "filter-", Role: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("list by role failed: %v", err)
	}
	if total != 1 || users[0].Email != "filter-bob@example.com" {
		t.Fatalf("role filter want filter-bob got total=%d users=%+v", total, users)
	}
}

func TestUserCountByEmailExcludesID(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := &models.User{
		Name:         "Email Count",
		Email:        "email-count@example.com",
		PasswordHash: "x",
		Role:         constants.RoleAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	count, err := repo.CountByEmail("Email-Count@example.com", nil)
	if err != nil {
		t.Fatalf("count by email failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	exclude := idString(user.ID)
	count, err = repo.CountByEmail("email-count@example.com", &exclude)
	if err != nil {
		t.Fatalf("count with exclusion failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count with exclusion want 0 got %d", count)
	}
}
