// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"cmp"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/internal/service"
	"github.com/MKhiriev/go-blog-api/internal/store"
	"github.com/MKhiriev/go-blog-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memUsers is an in-memory store.UserRepository.
type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return models.User{}, store.ErrUsernameAlreadyExists
		}
		if u.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}
	user.Tags = slices.Clone(user.Tags)
	m.users[user.ID] = user
	return user, nil
}

func (m *memUsers) find(match func(models.User) bool) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			u.Tags = slices.Clone(u.Tags)
			return u, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *memUsers) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Username == username })
}

func (m *memUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.Email == email })
}

func (m *memUsers) FindUserByID(_ context.Context, id string) (models.User, error) {
	return m.find(func(u models.User) bool { return u.ID == id })
}

func (m *memUsers) ListUsers(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b models.User) int { return cmp.Compare(a.Username, b.Username) })
	return users, nil
}

func (m *memUsers) update(id string, fn func(*models.User)) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return models.User{}, store.ErrUserNotFound
	}
	fn(&u)
	m.users[id] = u
	return u, nil
}

func (m *memUsers) UpdateProfile(_ context.Context, id, firstName, lastName string) (models.User, error) {
	return m.update(id, func(u *models.User) { u.FirstName, u.LastName = firstName, lastName })
}

func (m *memUsers) UpdatePasswordHash(_ context.Context, id, hash string) error {
	_, err := m.update(id, func(u *models.User) { u.PasswordHash = hash })
	return err
}

func (m *memUsers) AddTags(_ context.Context, id string, tags []string) error {
	_, err := m.update(id, func(u *models.User) {
		for _, t := range tags {
			if !slices.Contains(u.Tags, t) {
				u.Tags = append(u.Tags, t)
			}
		}
	})
	return err
}

func (m *memUsers) RemoveTags(_ context.Context, id string, tags []string) error {
	_, err := m.update(id, func(u *models.User) {
		u.Tags = slices.DeleteFunc(slices.Clone(u.Tags), func(t string) bool { return slices.Contains(tags, t) })
	})
	return err
}

func (m *memUsers) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

// memBlogs is an in-memory store.BlogRepository. Owner names are resolved
// from users on read, like the SQL join.
type memBlogs struct {
	mu    sync.Mutex
	blogs map[string]models.Blog
	users *memUsers
}

func newMemBlogs(users *memUsers) *memBlogs {
	return &memBlogs{blogs: make(map[string]models.Blog), users: users}
}

func (m *memBlogs) resolve(b models.Blog) models.Blog {
	b.Owner = ""
	if u, err := m.users.FindUserByID(context.Background(), b.OwnerID); err == nil {
		b.Owner = u.Username
	}
	b.Tags = slices.Clone(b.Tags)
	return b
}

func (m *memBlogs) CreateBlog(_ context.Context, blog models.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blogs[blog.ID] = blog
	return nil
}

func (m *memBlogs) GetBlogByID(_ context.Context, id string) (models.Blog, error) {
	m.mu.Lock()
	b, ok := m.blogs[id]
	m.mu.Unlock()
	if !ok {
		return models.Blog{}, store.ErrBlogNotFound
	}
	return m.resolve(b), nil
}

func (m *memBlogs) UpdateBlog(_ context.Context, blog models.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blogs[blog.ID]
	if !ok {
		return store.ErrBlogNotFound
	}
	b.Title, b.Body, b.Tags, b.UpdatedAt = blog.Title, blog.Body, blog.Tags, blog.UpdatedAt
	m.blogs[blog.ID] = b
	return nil
}

func (m *memBlogs) DeleteBlog(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blogs[id]; !ok {
		return store.ErrBlogNotFound
	}
	delete(m.blogs, id)
	return nil
}

func (m *memBlogs) ListBlogs(_ context.Context, filter models.BlogFilter, sortBy string, order models.SortOrder) ([]models.Blog, error) {
	m.mu.Lock()
	all := make([]models.Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		all = append(all, b)
	}
	m.mu.Unlock()

	blogs := make([]models.Blog, 0, len(all))
	for _, b := range all {
		if filter.OwnerID != "" && b.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Tag != "" && !slices.Contains(b.Tags, filter.Tag) {
			continue
		}
		if len(filter.AnyTags) > 0 && !slices.ContainsFunc(b.Tags, func(t string) bool { return slices.Contains(filter.AnyTags, t) }) {
			continue
		}
		blogs = append(blogs, m.resolve(b))
	}

	slices.SortStableFunc(blogs, func(a, b models.Blog) int {
		var c int
		switch sortBy {
		case models.SortByTitle:
			c = cmp.Compare(a.Title, b.Title)
		case models.SortByUpdatedAt:
			c = a.UpdatedAt.Compare(b.UpdatedAt)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if order == models.SortDesc {
			c = -c
		}
		return c
	})
	return blogs, nil
}

// scenario drives the full router over real services and in-memory storage.
type scenario struct {
	t      *testing.T
	router http.Handler
	users  *memUsers
	blogs  *memBlogs
}

func newScenario(t *testing.T) *scenario {
	t.Helper()

	users := newMemUsers()
	blogs := newMemBlogs(users)
	cfg := &config.StructuredConfig{
		App: config.App{
			TokenSignKey:     "scenario-secret",
			TokenAlgorithm:   "HS256",
			TokenIssuer:      "blog-api",
			TokenDuration:    20 * time.Minute,
			PasswordHashCost: bcrypt.MinCost,
			Version:          "scenario",
		},
	}

	services, err := service.NewServices(
		&store.Storages{UserRepository: users, BlogRepository: blogs},
		cfg,
		models.NewAppBuildInfo("", "", ""),
		logger.Nop(),
	)
	require.NoError(t, err)

	router := NewHandler(services, config.Server{}, nil, nil, logger.Nop()).Init()
	return &scenario{t: t, router: router, users: users, blogs: blogs}
}

func (s *scenario) send(method, target, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		withBearer(req, token)
	}
	return do(s.router, req)
}

func (s *scenario) register(username, role string) models.User {
	s.t.Helper()
	body, err := json.Marshal(models.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "First",
		LastName:  "Last",
		Password:  "Passw0rdX",
		Role:      role,
	})
	require.NoError(s.t, err)

	rec := s.send(http.MethodPost, "/api/auth/", "", string(body))
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &user))
	return user
}

func (s *scenario) login(username, password string) string {
	s.t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := do(s.router, req)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var tok models.TokenResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.Equal(s.t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func (s *scenario) createBlog(token, body string) models.Blog {
	s.t.Helper()
	rec := s.send(http.MethodPost, "/api/blogs/", token, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var blog models.Blog
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &blog))
	return blog
}

func listOf(t *testing.T, rec *httptest.ResponseRecorder) []models.Blog {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var blogs []models.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blogs))
	return blogs
}

func TestScenario_RegisterLoginPublish(t *testing.T) {
	s := newScenario(t)

	alice := s.register("alice", "")
	assert.Equal(t, models.RoleUser, alice.Role)

	rec := s.send(http.MethodPost, "/api/auth/", "",
		`{"username":"alice","email":"other@example.com","first_name":"A","last_name":"B","password":"Passw0rdX"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeConflict, decodeError(t, rec).Code)

	rec = s.send(http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"wrong-Passw0rd"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login("alice", "Passw0rdX")

	blog := s.createBlog(token, `{"title":"First post","body":"Hello there","tags":["go","go","web"]}`)
	assert.Equal(t, alice.ID, blog.OwnerID)
	assert.Equal(t, "alice", blog.Owner)
	assert.Equal(t, []string{"go", "web"}, blog.Tags)

	blogs := listOf(t, s.send(http.MethodGet, "/api/blogs/", "", ""))
	require.Len(t, blogs, 1)
	assert.Equal(t, blog.ID, blogs[0].ID)

	rec = s.send(http.MethodGet, "/api/blogs/"+blog.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.send(http.MethodGet, "/api/users/info", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Passw0rdX")
}

func TestScenario_OwnershipAndModeration(t *testing.T) {
	s := newScenario(t)
	s.register("alice", "")
	s.register("bob", "")
	s.register("root", "admin")

	alice := s.login("alice", "Passw0rdX")
	bob := s.login("bob", "Passw0rdX")
	root := s.login("root", "Passw0rdX")

	blog := s.createBlog(alice, `{"title":"Alice writes","body":"Some text","tags":["go"]}`)

	// bob can neither edit nor delete alice's blog
	rec := s.send(http.MethodPut, "/api/blogs/"+blog.ID, bob, `{"title":"Hijacked","body":"Bob was here","tags":[]}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, codeAuthorizationFailed, decodeError(t, rec).Code)

	rec = s.send(http.MethodDelete, "/api/adminuser/deleteblog/"+blog.ID, bob, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, codeAuthorizationFailed, decodeError(t, rec).Code)

	// the owner can edit
	rec = s.send(http.MethodPut, "/api/blogs/"+blog.ID, alice, `{"title":"Alice rewrites","body":"Other text","tags":["rust"]}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.send(http.MethodGet, "/api/blogs/"+blog.ID, "", "")
	var updated models.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Alice rewrites", updated.Title)
	assert.Equal(t, []string{"rust"}, updated.Tags)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	// updating a missing blog is 404 even for a stranger
	rec = s.send(http.MethodPut, "/api/blogs/0195f3a2-ffff-7000-8000-00000000ffff", bob, `{"title":"Nothing","body":"Nothing here","tags":[]}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// admin moderation
	rec = s.send(http.MethodDelete, "/api/adminuser/deleteblog/"+blog.ID, root, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.send(http.MethodGet, "/api/blogs/"+blog.ID, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.send(http.MethodDelete, "/api/adminuser/deleteblog/"+blog.ID, root, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestScenario_DeletedUserKeepsBlogs(t *testing.T) {
	s := newScenario(t)
	bobUser := s.register("bob", "")
	s.register("root", "admin")

	bob := s.login("bob", "Passw0rdX")
	root := s.login("root", "Passw0rdX")

	blog := s.createBlog(bob, `{"title":"Bob's post","body":"Still here","tags":["misc"]}`)

	rec := s.send(http.MethodGet, "/api/adminuser/all_users", root, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 2)

	rec = s.send(http.MethodDelete, "/api/adminuser/delete/"+bobUser.ID, root, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// bob's token no longer identifies anyone
	rec = s.send(http.MethodGet, "/api/users/info", bob, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.send(http.MethodGet, "/api/blogs/"+blog.ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var kept models.Blog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kept))
	assert.Equal(t, bobUser.ID, kept.OwnerID)
	assert.Empty(t, kept.Owner)
}

func TestScenario_PasswordChange(t *testing.T) {
	s := newScenario(t)
	s.register("alice", "")
	token := s.login("alice", "Passw0rdX")

	rec := s.send(http.MethodPut, "/api/users/change_password", token, `{"password":"Passw0rdX","new_password":"Passw0rdX"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeValidationFailed, decodeError(t, rec).Code)

	rec = s.send(http.MethodPut, "/api/users/change_password", token, `{"password":"Wrong0ne","new_password":"N3wPassword"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.send(http.MethodPut, "/api/users/change_password", token, `{"password":"Passw0rdX","new_password":"N3wPassword"}`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.send(http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"Passw0rdX"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	s.login("alice", "N3wPassword")
}

func TestScenario_TagsAndDashboard(t *testing.T) {
	s := newScenario(t)
	s.register("alice", "")
	s.register("bob", "")
	alice := s.login("alice", "Passw0rdX")
	bob := s.login("bob", "Passw0rdX")

	s.createBlog(alice, `{"title":"Go tips","body":"Use gofmt","tags":["go"]}`)
	s.createBlog(alice, `{"title":"Rust tips","body":"Use clippy","tags":["rust"]}`)
	s.createBlog(alice, `{"title":"Cooking","body":"Use salt","tags":["food"]}`)

	// no tags yet: empty dashboard
	assert.Empty(t, listOf(t, s.send(http.MethodGet, "/api/dashboard/blogs", bob, "")))

	rec := s.send(http.MethodPut, "/api/users/add_tags", bob, `["go","rust","go"]`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	blogs := listOf(t, s.send(http.MethodGet, "/api/dashboard/blogs?sort_by=title&sort_order=asc", bob, ""))
	require.Len(t, blogs, 2)
	assert.Equal(t, "Go tips", blogs[0].Title)
	assert.Equal(t, "Rust tips", blogs[1].Title)

	rec = s.send(http.MethodPut, "/api/users/remove_tags", bob, `["rust","never-added"]`)
	require.Equal(t, http.StatusNoContent, rec.Code)

	blogs = listOf(t, s.send(http.MethodGet, "/api/dashboard/blogs", bob, ""))
	require.Len(t, blogs, 1)
	assert.Equal(t, "Go tips", blogs[0].Title)

	rec = s.send(http.MethodGet, "/api/users/info", bob, "")
	var info models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, []string{"go"}, info.Tags)

	blogs = listOf(t, s.send(http.MethodGet, "/api/dashboard/blogs/food", "", ""))
	require.Len(t, blogs, 1)
	assert.Equal(t, "Cooking", blogs[0].Title)

	mine := listOf(t, s.send(http.MethodGet, "/api/blogs/myblogs", alice, ""))
	assert.Len(t, mine, 3)
	assert.Empty(t, listOf(t, s.send(http.MethodGet, "/api/blogs/myblogs", bob, "")))
}

func TestScenario_Pagination(t *testing.T) {
	s := newScenario(t)
	s.register("alice", "")
	token := s.login("alice", "Passw0rdX")

	for _, title := range []string{"Post A", "Post B", "Post C"} {
		s.createBlog(token, `{"title":"`+title+`","body":"Body text","tags":[]}`)
	}

	page := listOf(t, s.send(http.MethodGet, "/api/blogs/?sort_by=title&sort_order=asc&limit=2&offset=1", "", ""))
	require.Len(t, page, 2)
	assert.Equal(t, "Post B", page[0].Title)
	assert.Equal(t, "Post C", page[1].Title)

	assert.Empty(t, listOf(t, s.send(http.MethodGet, "/api/blogs/?offset=10", "", "")))

	rec := s.send(http.MethodGet, "/api/blogs/?sort_by=body", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeValidationFailed, decodeError(t, rec).Code)
}
