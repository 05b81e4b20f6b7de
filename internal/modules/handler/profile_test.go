package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/folioworks/profile-service/internal/modules/model"
	"github.com/folioworks/profile-service/internal/modules/repo"
	"github.com/folioworks/profile-service/internal/modules/service"
)

// MockProfileService is a mock implementation of service.ProfileService
type MockProfileService struct {
	mock.Mock
}

var _ service.ProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) CreateProfile(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockProfileService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockProfileService) ListProfiles(ctx context.Context, limit, offset int) ([]*model.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, id uint, patch repo.UserPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockProfileService) AddSkill(ctx context.Context, id uint, skill string) error {
	args := m.Called(ctx, id, skill)
	return args.Error(0)
}

func (m *MockProfileService) DeleteProfile(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileService) ReplaceWorkHistory(ctx context.Context, userID uint, entries []model.Work) error {
	args := m.Called(ctx, userID, entries)
	return args.Error(0)
}

func (m *MockProfileService) ReplaceEducation(ctx context.Context, userID uint, entries []model.Education) error {
	args := m.Called(ctx, userID, entries)
	return args.Error(0)
}

func (m *MockProfileService) AddProject(ctx context.Context, userID uint, p *model.Project) error {
	args := m.Called(ctx, userID, p)
	return args.Error(0)
}

func setupProfileRouter(svc service.ProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewProfileHandler(svc)

	r := gin.New()
	users := r.Group("/api/v1/users")
	users.POST("", h.CreateProfile)
	users.GET("", h.ListProfiles)
	users.GET("/:id", h.GetProfile)
	users.PUT("/:id", h.UpdateProfile)
	users.DELETE("/:id", h.DeleteProfile)
	users.PATCH("/:id/skills", h.AddSkill)
	users.PUT("/:id/education", h.UpdateEducation)
	users.PUT("/:id/work-history", h.UpdateWorkHistory)
	users.POST("/:id/projects", h.AddProject)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProfileHandler_CreateProfile(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(*MockProfileService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful creation",
			body: `{"name":"Ada","email":"ada@x.com","skills":["Go"]}`,
			setup: func(svc *MockProfileService) {
				svc.On("CreateProfile", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = 1
					}).
					Return(nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"email":"ada@x.com"`,
		},
		{
			name: "nested children accepted",
			body: `{"name":"Ada","email":"ada@x.com","projects":[{"title":"p"}],"workHistory":[{"company":"c","position":"pos"}],"education":[{"institution":"i"}]}`,
			setup: func(svc *MockProfileService) {
				svc.On("CreateProfile", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return len(u.Projects) == 1 && len(u.WorkHistory) == 1 && len(u.Education) == 1
				})).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing email rejected before the service",
			body:           `{"name":"Ada"}`,
			setup:          func(svc *MockProfileService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error"`,
		},
		{
			name:           "malformed email rejected",
			body:           `{"name":"Ada","email":"not-an-email"}`,
			setup:          func(svc *MockProfileService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email maps to 400",
			body: `{"name":"Ada","email":"ada@x.com"}`,
			setup: func(svc *MockProfileService) {
				svc.On("CreateProfile", mock.Anything, mock.Anything).Return(repo.ErrDuplicateEmail)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `email already in use`,
		},
		{
			name: "infrastructure failure maps to 500",
			body: `{"name":"Ada","email":"ada@x.com"}`,
			setup: func(svc *MockProfileService) {
				svc.On("CreateProfile", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockProfileService{}
			tt.setup(mockSvc)

			w := doJSON(t, setupProfileRouter(mockSvc), "POST", "/api/v1/users", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestProfileHandler_GetProfile(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("GetProfile", mock.Anything, uint(1)).Return(&model.User{ID: 1, Name: "Ada", Email: "ada@x.com"}, nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "GET", "/api/v1/users/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"Ada"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("absent maps to 404", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("GetProfile", mock.Anything, uint(9)).Return(nil, nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "GET", "/api/v1/users/9", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "user not found")
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-numeric id maps to 400", func(t *testing.T) {
		mockSvc := &MockProfileService{}

		w := doJSON(t, setupProfileRouter(mockSvc), "GET", "/api/v1/users/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestProfileHandler_ListProfiles(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("ListProfiles", mock.Anything, 10, 0).Return([]*model.User{}, nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "GET", "/api/v1/users", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
		mockSvc.AssertExpectations(t)
	})

	t.Run("explicit paging forwarded", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("ListProfiles", mock.Anything, 2, 2).Return([]*model.User{{ID: 3}, {ID: 4}}, nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "GET", "/api/v1/users?limit=2&offset=2", "")
		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("limit above cap rejected", func(t *testing.T) {
		mockSvc := &MockProfileService{}

		w := doJSON(t, setupProfileRouter(mockSvc), "GET", "/api/v1/users?limit=500", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestProfileHandler_UpdateProfile(t *testing.T) {
	mockSvc := &MockProfileService{}
	mockSvc.On("UpdateProfile", mock.Anything, uint(1), mock.MatchedBy(func(p repo.UserPatch) bool {
		return p.Name != nil && *p.Name == "Ada Lovelace" && p.Email == nil
	})).Return(nil)

	w := doJSON(t, setupProfileRouter(mockSvc), "PUT", "/api/v1/users/1", `{"name":"Ada Lovelace"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Profile updated successfully")
	mockSvc.AssertExpectations(t)
}

func TestProfileHandler_DeleteProfile(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("DeleteProfile", mock.Anything, uint(1)).Return(int64(1), nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "DELETE", "/api/v1/users/1", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "User deleted successfully")
		mockSvc.AssertExpectations(t)
	})

	t.Run("zero count maps to 404", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("DeleteProfile", mock.Anything, uint(9)).Return(int64(0), nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "DELETE", "/api/v1/users/9", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestProfileHandler_AddSkill(t *testing.T) {
	t.Run("appended", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("AddSkill", mock.Anything, uint(1), "Rust").Return(nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "PATCH", "/api/v1/users/1/skills", `{"skill":"Rust"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Skill added successfully")
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing skill rejected", func(t *testing.T) {
		mockSvc := &MockProfileService{}

		w := doJSON(t, setupProfileRouter(mockSvc), "PATCH", "/api/v1/users/1/skills", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestProfileHandler_UpdateWorkHistory(t *testing.T) {
	t.Run("replaced", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("ReplaceWorkHistory", mock.Anything, uint(1), mock.MatchedBy(func(ws []model.Work) bool {
			return len(ws) == 1 && ws[0].Company == "New Co"
		})).Return(nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "PUT", "/api/v1/users/1/work-history",
			`[{"company":"New Co","position":"Senior"}]`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Work history updated successfully")
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty array clears", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("ReplaceWorkHistory", mock.Anything, uint(1), mock.MatchedBy(func(ws []model.Work) bool {
			return len(ws) == 0
		})).Return(nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "PUT", "/api/v1/users/1/work-history", `[]`)
		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown user maps to 404", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("ReplaceWorkHistory", mock.Anything, uint(9), mock.Anything).Return(repo.ErrUserNotFound)

		w := doJSON(t, setupProfileRouter(mockSvc), "PUT", "/api/v1/users/9/work-history",
			`[{"company":"c","position":"p"}]`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("entry missing company rejected", func(t *testing.T) {
		mockSvc := &MockProfileService{}

		w := doJSON(t, setupProfileRouter(mockSvc), "PUT", "/api/v1/users/1/work-history",
			`[{"position":"p"}]`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestProfileHandler_UpdateEducation(t *testing.T) {
	mockSvc := &MockProfileService{}
	mockSvc.On("ReplaceEducation", mock.Anything, uint(1), mock.MatchedBy(func(es []model.Education) bool {
		return len(es) == 1 && es[0].Institution == "MIT"
	})).Return(nil)

	w := doJSON(t, setupProfileRouter(mockSvc), "PUT", "/api/v1/users/1/education",
		`[{"institution":"MIT","degree":"BSc","startDate":"2020-09-01T00:00:00Z"}]`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Education updated successfully")
	mockSvc.AssertExpectations(t)
}

func TestProfileHandler_AddProject(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockSvc := &MockProfileService{}
		mockSvc.On("AddProject", mock.Anything, uint(1), mock.AnythingOfType("*model.Project")).
			Run(func(args mock.Arguments) {
				args.Get(2).(*model.Project).ID = 11
			}).
			Return(nil)

		w := doJSON(t, setupProfileRouter(mockSvc), "POST", "/api/v1/users/1/projects",
			`{"title":"Notes","links":["https://example.com"]}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":11`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		mockSvc := &MockProfileService{}

		w := doJSON(t, setupProfileRouter(mockSvc), "POST", "/api/v1/users/1/projects", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertExpectations(t)
	})
}

// End-to-end shape of the scenario from the service's acceptance checklist:
// create, idempotent skill patch, full work-history replace.
func TestProfileHandler_Scenario(t *testing.T) {
	mockSvc := &MockProfileService{}
	r := setupProfileRouter(mockSvc)

	mockSvc.On("CreateProfile", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*model.User).ID = 5 }).
		Return(nil).Once()
	w := doJSON(t, r, "POST", "/api/v1/users", `{"name":"Ada","email":"ada@x.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"id":5`)

	mockSvc.On("AddSkill", mock.Anything, uint(5), "Rust").Return(nil).Twice()
	for range 2 {
		w = doJSON(t, r, "PATCH", "/api/v1/users/5/skills", `{"skill":"Rust"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}

	mockSvc.On("ReplaceWorkHistory", mock.Anything, uint(5), mock.Anything).Return(nil).Once()
	w = doJSON(t, r, "PUT", "/api/v1/users/5/work-history", `[{"company":"c","position":"p"}]`)
	require.Equal(t, http.StatusOK, w.Code)

	mockSvc.AssertExpectations(t)
}
