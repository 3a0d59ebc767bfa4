// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Fake services
// ─────────────────────────────────────────────

type fakeAuthService struct {
	registerFn    func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn       func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFn func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn  func(ctx context.Context, token string) (models.Token, error)
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if f.registerFn != nil {
		return f.registerFn(ctx, req)
	}
	return models.User{}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	if f.loginFn != nil {
		return f.loginFn(ctx, req)
	}
	return models.User{}, nil
}

func (f *fakeAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if f.createTokenFn != nil {
		return f.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed-" + user.Username}, nil
}

// ParseToken accepts "alice-token", "bob-token" and "admin-token" by default.
func (f *fakeAuthService) ParseToken(ctx context.Context, token string) (models.Token, error) {
	if f.parseTokenFn != nil {
		return f.parseTokenFn(ctx, token)
	}
	switch token {
	case "alice-token":
		return models.Token{Principal: testAlice}, nil
	case "bob-token":
		return models.Token{Principal: testBob}, nil
	case "admin-token":
		return models.Token{Principal: testAdmin}, nil
	default:
		return models.Token{}, service.ErrAuthenticationFailed
	}
}

type fakeUserService struct {
	getInfoFn        func(ctx context.Context, p models.Principal) (models.User, error)
	updateProfileFn  func(ctx context.Context, p models.Principal, req models.UpdateProfileRequest) (models.User, error)
	changePasswordFn func(ctx context.Context, p models.Principal, req models.ChangePasswordRequest) error
	addTagsFn        func(ctx context.Context, p models.Principal, tags []string) error
	removeTagsFn     func(ctx context.Context, p models.Principal, tags []string) error
	listUsersFn      func(ctx context.Context, p models.Principal) ([]models.User, error)
	deleteUserFn     func(ctx context.Context, p models.Principal, id string) error
}

func (f *fakeUserService) GetInfo(ctx context.Context, p models.Principal) (models.User, error) {
	if f.getInfoFn != nil {
		return f.getInfoFn(ctx, p)
	}
	return models.User{ID: p.ID, Username: p.Username, Role: p.Role}, nil
}

func (f *fakeUserService) UpdateProfile(ctx context.Context, p models.Principal, req models.UpdateProfileRequest) (models.User, error) {
	if f.updateProfileFn != nil {
		return f.updateProfileFn(ctx, p, req)
	}
	return models.User{ID: p.ID, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (f *fakeUserService) ChangePassword(ctx context.Context, p models.Principal, req models.ChangePasswordRequest) error {
	if f.changePasswordFn != nil {
		return f.changePasswordFn(ctx, p, req)
	}
	return nil
}

func (f *fakeUserService) AddTags(ctx context.Context, p models.Principal, tags []string) error {
	if f.addTagsFn != nil {
		return f.addTagsFn(ctx, p, tags)
	}
	return nil
}

func (f *fakeUserService) RemoveTags(ctx context.Context, p models.Principal, tags []string) error {
	if f.removeTagsFn != nil {
		return f.removeTagsFn(ctx, p, tags)
	}
	return nil
}

func (f *fakeUserService) ListUsers(ctx context.Context, p models.Principal) ([]models.User, error) {
	if f.listUsersFn != nil {
		return f.listUsersFn(ctx, p)
	}
	return []models.User{}, nil
}

func (f *fakeUserService) DeleteUser(ctx context.Context, p models.Principal, id string) error {
	if f.deleteUserFn != nil {
		return f.deleteUserFn(ctx, p, id)
	}
	return nil
}

type fakeBlogService struct {
	createFn      func(ctx context.Context, p models.Principal, req models.BlogRequest) (models.Blog, error)
	getFn         func(ctx context.Context, id string) (models.Blog, error)
	listFn        func(ctx context.Context, params models.ListParams) ([]models.Blog, error)
	listOwnFn     func(ctx context.Context, p models.Principal, params models.ListParams) ([]models.Blog, error)
	listByTagFn   func(ctx context.Context, tag string, params models.ListParams) ([]models.Blog, error)
	listMatchFn   func(ctx context.Context, p models.Principal, params models.ListParams) ([]models.Blog, error)
	updateFn      func(ctx context.Context, p models.Principal, id string, req models.BlogRequest) error
	deleteFn      func(ctx context.Context, p models.Principal, id string) error
	adminDeleteFn func(ctx context.Context, p models.Principal, id string) error
}

func (f *fakeBlogService) CreateBlog(ctx context.Context, p models.Principal, req models.BlogRequest) (models.Blog, error) {
	if f.createFn != nil {
		return f.createFn(ctx, p, req)
	}
	return models.Blog{Title: req.Title, Body: req.Body, OwnerID: p.ID, Owner: p.Username}, nil
}

func (f *fakeBlogService) GetBlog(ctx context.Context, id string) (models.Blog, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return models.Blog{ID: id}, nil
}

func (f *fakeBlogService) ListBlogs(ctx context.Context, params models.ListParams) ([]models.Blog, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return []models.Blog{}, nil
}

func (f *fakeBlogService) ListOwnBlogs(ctx context.Context, p models.Principal, params models.ListParams) ([]models.Blog, error) {
	if f.listOwnFn != nil {
		return f.listOwnFn(ctx, p, params)
	}
	return []models.Blog{}, nil
}

func (f *fakeBlogService) ListBlogsByTag(ctx context.Context, tag string, params models.ListParams) ([]models.Blog, error) {
	if f.listByTagFn != nil {
		return f.listByTagFn(ctx, tag, params)
	}
	return []models.Blog{}, nil
}

func (f *fakeBlogService) ListBlogsMatchingUserTags(ctx context.Context, p models.Principal, params models.ListParams) ([]models.Blog, error) {
	if f.listMatchFn != nil {
		return f.listMatchFn(ctx, p, params)
	}
	return []models.Blog{}, nil
}

func (f *fakeBlogService) UpdateBlog(ctx context.Context, p models.Principal, id string, req models.BlogRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p, id, req)
	}
	return nil
}

func (f *fakeBlogService) DeleteBlog(ctx context.Context, p models.Principal, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, p, id)
	}
	return nil
}

func (f *fakeBlogService) AdminDeleteBlog(ctx context.Context, p models.Principal, id string) error {
	if f.adminDeleteFn != nil {
		return f.adminDeleteFn(ctx, p, id)
	}
	return nil
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	testAlice = models.Principal{Username: "alice", ID: "0195f3a2-1111-7000-8000-000000000001", Role: models.RoleUser}
	testBob   = models.Principal{Username: "bob", ID: "0195f3a2-2222-7000-8000-000000000002", Role: models.RoleUser}
	testAdmin = models.Principal{Username: "root", ID: "0195f3a2-9999-7000-8000-000000000009", Role: models.RoleAdmin}
)

type fakeServices struct {
	auth  *fakeAuthService
	users *fakeUserService
	blogs *fakeBlogService
}

func newFakeServices() *fakeServices {
	return &fakeServices{
		auth:  &fakeAuthService{},
		users: &fakeUserService{},
		blogs: &fakeBlogService{},
	}
}

func (f *fakeServices) services() *service.Services {
	return &service.Services{
		AuthService:    f.auth,
		UserService:    f.users,
		BlogService:    f.blogs,
		AppInfoService: &fakeAppInfoService{version: "test-version"},
	}
}

// newTestRouter builds the full router over fakes with rate limiting off.
func newTestRouter(t *testing.T, f *fakeServices) http.Handler {
	t.Helper()
	h := NewHandler(f.services(), config.Server{}, nil, nil, logger.Nop())
	require.NotNil(t, h)
	return h.Init()
}

// do sends req through router and returns the recorded response.
func do(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// injectNopLogger attaches a disabled logger to the request context.
func injectNopLogger(r *http.Request) *http.Request {
	return r.WithContext(logger.Nop().WithContext(r.Context()))
}
