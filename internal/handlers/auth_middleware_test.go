package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ScholarStream/scholarship-service/internal/auth"
	"github.com/ScholarStream/scholarship-service/internal/models"
	"github.com/ScholarStream/scholarship-service/internal/repositories"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) { return nil, nil }

func (r *fakeUserRepo) UpdateRole(_ context.Context, email string, role models.UserRole) error {
	user, ok := r.byEmail[email]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Role = role
	return nil
}

func (r *fakeUserRepo) DeleteByEmail(_ context.Context, email string) error {
	delete(r.byEmail, email)
	return nil
}

func okProbe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": c.GetString("user_email")})
}

func newAuthTestRouter(t *testing.T, repo *fakeUserRepo) (*gin.Engine, *auth.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager("test-secret")
	am := NewCookieAuthMiddleware(tokens, repo)

	router := gin.New()
	router.GET("/me", am.AuthMiddleware(), okProbe)
	router.GET("/moderation", am.AuthMiddleware(), am.RequireRoleMiddleware(models.RoleModerator, models.RoleAdmin), okProbe)
	router.GET("/own/:email", am.AuthMiddleware(), am.RequireOwnerMiddleware("email"), okProbe)
	return router, tokens
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingCookie(t *testing.T) {
	router, _ := newAuthTestRouter(t, &fakeUserRepo{byEmail: map[string]*models.User{}})

	if w := doRequest(router, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without cookie, got %d", w.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, _ := newAuthTestRouter(t, &fakeUserRepo{byEmail: map[string]*models.User{}})

	if w := doRequest(router, "/me", "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, tokens := newAuthTestRouter(t, &fakeUserRepo{byEmail: map[string]*models.User{}})

	token, err := tokens.Issue("a@x.com", "A")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if w := doRequest(router, "/me", token); w.Code != http.StatusOK {
		t.Errorf("expected 200 with valid cookie, got %d", w.Code)
	}
}

func TestRequireRoleMiddleware_FreshRoleLookup(t *testing.T) {
	repo := &fakeUserRepo{byEmail: map[string]*models.User{
		"a@x.com": {Email: "a@x.com", Role: models.RoleStudent},
	}}
	router, tokens := newAuthTestRouter(t, repo)

	token, err := tokens.Issue("a@x.com", "A")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if w := doRequest(router, "/moderation", token); w.Code != http.StatusForbidden {
		t.Errorf("student should be denied, got %d", w.Code)
	}

	// Promote without reissuing the token: the middleware must see the
	// stored role, not anything baked into the session.
	repo.byEmail["a@x.com"].Role = models.RoleModerator
	if w := doRequest(router, "/moderation", token); w.Code != http.StatusOK {
		t.Errorf("moderator should be allowed on the same token, got %d", w.Code)
	}

	repo.byEmail["a@x.com"].Role = models.RoleStudent
	if w := doRequest(router, "/moderation", token); w.Code != http.StatusForbidden {
		t.Errorf("demotion should take effect on the same token, got %d", w.Code)
	}
}

func TestRequireRoleMiddleware_UnknownUserFailsClosed(t *testing.T) {
	router, tokens := newAuthTestRouter(t, &fakeUserRepo{byEmail: map[string]*models.User{}})

	token, err := tokens.Issue("ghost@x.com", "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if w := doRequest(router, "/moderation", token); w.Code != http.StatusForbidden {
		t.Errorf("unknown user should be denied, got %d", w.Code)
	}
}

func TestRequireOwnerMiddleware(t *testing.T) {
	router, tokens := newAuthTestRouter(t, &fakeUserRepo{byEmail: map[string]*models.User{}})

	token, err := tokens.Issue("a@x.com", "A")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if w := doRequest(router, "/own/a@x.com", token); w.Code != http.StatusOK {
		t.Errorf("owner should be allowed, got %d", w.Code)
	}
	if w := doRequest(router, "/own/A@X.com", token); w.Code != http.StatusOK {
		t.Errorf("email comparison is case-normalized, got %d", w.Code)
	}
	if w := doRequest(router, "/own/b@x.com", token); w.Code != http.StatusForbidden {
		t.Errorf("non-owner should be denied, got %d", w.Code)
	}
}
