package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/folioworks/profile-service/internal/modules/model"
	"github.com/folioworks/profile-service/internal/modules/repo"
	"github.com/folioworks/profile-service/internal/modules/serializer"
	"github.com/folioworks/profile-service/internal/modules/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: s}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ErrMsg("invalid user id"))
		return 0, false
	}
	return uint(id), true
}

// writeStoreErr maps the store's error taxonomy onto status codes. The
// service layer does no translation, so this is the only place it happens.
func writeStoreErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrInvalidInput), errors.Is(err, repo.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, serializer.Err(err))
	case errors.Is(err, repo.ErrUserNotFound):
		c.JSON(http.StatusNotFound, serializer.Err(err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.Err(err))
	}
}

type ProjectReq struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Links       []string `json:"links" binding:"omitempty,dive,url"`
}

func (p ProjectReq) toModel() model.Project {
	return model.Project{
		Title:       p.Title,
		Description: p.Description,
		Links:       datatypes.NewJSONSlice(p.Links),
	}
}

type WorkReq struct {
	Company     string `json:"company" binding:"required"`
	Position    string `json:"position" binding:"required"`
	Description string `json:"description"`
}

func (w WorkReq) toModel() model.Work {
	return model.Work{
		Company:     w.Company,
		Position:    w.Position,
		Description: w.Description,
	}
}

type EducationReq struct {
	Institution string     `json:"institution" binding:"required"`
	Degree      string     `json:"degree"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func (e EducationReq) toModel() model.Education {
	return model.Education{
		Institution: e.Institution,
		Degree:      e.Degree,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
	}
}

type CreateProfileReq struct {
	Name          string         `json:"name" binding:"required"`
	Email         string         `json:"email" binding:"required,email"`
	Skills        []string       `json:"skills"`
	GithubLink    string         `json:"githubLink" binding:"omitempty,url"`
	LinkedinLink  string         `json:"linkedinLink" binding:"omitempty,url"`
	PortfolioLink string         `json:"portfolioLink" binding:"omitempty,url"`
	Projects      []ProjectReq   `json:"projects" binding:"omitempty,dive"`
	WorkHistory   []WorkReq      `json:"workHistory" binding:"omitempty,dive"`
	Education     []EducationReq `json:"education" binding:"omitempty,dive"`
}

// CreateProfile godoc
//
//	@Summary		Create profile
//	@Description	Create a user profile, optionally with nested projects, work history and education in the same transaction.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		handler.CreateProfileReq	true	"Profile payload"
//	@Success		201		{object}	model.User
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/users [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	req := CreateProfileReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err(err))
		return
	}

	u := &model.User{
		Name:          req.Name,
		Email:         req.Email,
		Skills:        datatypes.NewJSONSlice(req.Skills),
		GithubLink:    req.GithubLink,
		LinkedinLink:  req.LinkedinLink,
		PortfolioLink: req.PortfolioLink,
	}
	for _, p := range req.Projects {
		u.Projects = append(u.Projects, p.toModel())
	}
	for _, w := range req.WorkHistory {
		u.WorkHistory = append(u.WorkHistory, w.toModel())
	}
	for _, e := range req.Education {
		u.Education = append(u.Education, e.toModel())
	}

	if err := h.svc.CreateProfile(c.Request.Context(), u); err != nil {
		writeStoreErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}

type ListProfilesReq struct {
	Limit  int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}

// ListProfiles godoc
//
//	@Summary		List profiles
//	@Description	Page through user profiles in insertion order. Children are eager-loaded.
//	@Tags			users
//	@Produce		json
//	@Param			limit	query		integer	false	"Page size, default 10, max 100"
//	@Param			offset	query		integer	false	"Rows to skip, default 0"
//	@Success		200		{array}		model.User
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/users [get]
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	req := ListProfilesReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err(err))
		return
	}

	users, err := h.svc.ListProfiles(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}

	c.JSON(http.StatusOK, users)
}

// GetProfile godoc
//
//	@Summary		Get profile
//	@Description	Get a user profile by id with all child collections.
//	@Tags			users
//	@Produce		json
//	@Param			id	path		integer	true	"User id"
//	@Success		200	{object}	model.User
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/users/{id} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	u, err := h.svc.GetProfile(c.Request.Context(), id)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, serializer.ErrMsg("user not found"))
		return
	}

	c.JSON(http.StatusOK, u)
}

type UpdateProfileReq struct {
	Name          *string `json:"name" binding:"omitempty,min=1"`
	Email         *string `json:"email" binding:"omitempty,email"`
	GithubLink    *string `json:"githubLink" binding:"omitempty,url"`
	LinkedinLink  *string `json:"linkedinLink" binding:"omitempty,url"`
	PortfolioLink *string `json:"portfolioLink" binding:"omitempty,url"`
}

// UpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Partially update scalar profile fields. Updating a missing user is a no-op.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		integer						true	"User id"
//	@Param			payload	body		handler.UpdateProfileReq	true	"Fields to update"
//	@Success		200		{object}	serializer.MessageResponse
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/users/{id} [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req := UpdateProfileReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err(err))
		return
	}

	patch := repo.UserPatch{
		Name:          req.Name,
		Email:         req.Email,
		GithubLink:    req.GithubLink,
		LinkedinLink:  req.LinkedinLink,
		PortfolioLink: req.PortfolioLink,
	}
	if err := h.svc.UpdateProfile(c.Request.Context(), id, patch); err != nil {
		writeStoreErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Msg("Profile updated successfully"))
}

// DeleteProfile godoc
//
//	@Summary		Delete profile
//	@Description	Delete a user profile. All child rows are removed by the database cascade.
//	@Tags			users
//	@Produce		json
//	@Param			id	path		integer	true	"User id"
//	@Success		200	{object}	serializer.MessageResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/users/{id} [delete]
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.svc.DeleteProfile(c.Request.Context(), id)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, serializer.ErrMsg("user not found"))
		return
	}

	c.JSON(http.StatusOK, serializer.Msg("User deleted successfully"))
}

type AddSkillReq struct {
	Skill string `json:"skill" binding:"required"`
}

// AddSkill godoc
//
//	@Summary		Add skill
//	@Description	Append a skill to the profile's skill list. Duplicates are ignored, so the call is idempotent.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		integer				true	"User id"
//	@Param			payload	body		handler.AddSkillReq	true	"Skill to append"
//	@Success		200		{object}	serializer.MessageResponse
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/users/{id}/skills [patch]
func (h *ProfileHandler) AddSkill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req := AddSkillReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err(err))
		return
	}

	if err := h.svc.AddSkill(c.Request.Context(), id, req.Skill); err != nil {
		writeStoreErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Msg("Skill added successfully"))
}

// UpdateEducation godoc
//
//	@Summary		Replace education
//	@Description	Full-replace update: every existing education row for the user is discarded and the provided entries are inserted fresh. An empty array clears the collection.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		integer					true	"User id"
//	@Param			payload	body		[]handler.EducationReq	true	"New education entries"
//	@Success		200		{object}	serializer.MessageResponse
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/users/{id}/education [put]
func (h *ProfileHandler) UpdateEducation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req []EducationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err(err))
		return
	}

	entries := make([]model.Education, 0, len(req))
	for _, e := range req {
		entries = append(entries, e.toModel())
	}

	if err := h.svc.ReplaceEducation(c.Request.Context(), id, entries); err != nil {
		writeStoreErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Msg("Education updated successfully"))
}

// UpdateWorkHistory godoc
//
//	@Summary		Replace work history
//	@Description	Full-replace update: every existing work row for the user is discarded and the provided entries are inserted fresh. An empty array clears the collection.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		integer				true	"User id"
//	@Param			payload	body		[]handler.WorkReq	true	"New work entries"
//	@Success		200		{object}	serializer.MessageResponse
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/users/{id}/work-history [put]
func (h *ProfileHandler) UpdateWorkHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req []WorkReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err(err))
		return
	}

	entries := make([]model.Work, 0, len(req))
	for _, w := range req {
		entries = append(entries, w.toModel())
	}

	if err := h.svc.ReplaceWorkHistory(c.Request.Context(), id, entries); err != nil {
		writeStoreErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Msg("Work history updated successfully"))
}

// AddProject godoc
//
//	@Summary		Add project
//	@Description	Insert a single project under the user. Projects are additive only; there is no replace-all path.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		integer				true	"User id"
//	@Param			payload	body		handler.ProjectReq	true	"Project payload"
//	@Success		201		{object}	model.Project
//	@Failure		400		{object}	serializer.ErrorResponse
//	@Router			/users/{id}/projects [post]
func (h *ProfileHandler) AddProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	req := ProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.Err(err))
		return
	}

	p := req.toModel()
	if err := h.svc.AddProject(c.Request.Context(), id, &p); err != nil {
		writeStoreErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}
