package restapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noteweaver/noteweaver/internal/core"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
)

type FoldersHandler struct {
	store            db.Store
	organizer        *core.Organizer
	maxTokensPerCall int
}

type CreateFolderRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

type OrganizeRequest struct {
	DryRun *bool `json:"dry_run"`
}

func NewFoldersHandler(r *gin.RouterGroup, store db.Store, organizer *core.Organizer, maxTokensPerCall int) *FoldersHandler {
	handler := &FoldersHandler{store: store, organizer: organizer, maxTokensPerCall: maxTokensPerCall}
	folders := r.Group("/folders")
	folders.GET("", handler.List)
	folders.POST("", handler.Create)
	folders.DELETE("/:id", handler.Delete)
	folders.GET("/:id/notes", handler.Notes)
	folders.POST("/organize", handler.Organize)
	folders.POST("/organize/apply", handler.Apply)
	return handler
}

// List godoc
// @Summary  List folders with their note counts
// @Tags     folders
// @Produce  json
// @Success  200 {array} domain.Folder
// @Security ApiKeyAuth
// @Router   /api/folders [get]
func (h *FoldersHandler) List(c *gin.Context) {
	folders, err := h.store.GetAllFolders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, folders)
}

func (h *FoldersHandler) Create(c *gin.Context) {
	var req CreateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		badRequest(c, i18n.T("folder_name_required"))
		return
	}
	folder, err := h.store.CreateFolder(c.Request.Context(), name, req.Color)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}

func (h *FoldersHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteFolder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FoldersHandler) Notes(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	folder, err := h.store.GetFolder(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if folder == nil {
		writeError(c, fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(i18n.T("folder_not_found"), id)))
		return
	}
	notes, err := h.store.GetNotesInFolder(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// Organize godoc
// @Summary  Propose folders for the notes that have none
// @Description With dry_run false the proposal is applied right away and the apply summary is returned.
// @Tags     folders
// @Accept   json
// @Produce  json
// @Param    request body OrganizeRequest false "dry_run defaults to true"
// @Success  200 {object} domain.OrganizationResult
// @Failure  502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router   /api/folders/organize [post]
func (h *FoldersHandler) Organize(c *gin.Context) {
	var req OrganizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	dryRun := req.DryRun == nil || *req.DryRun

	ctx := c.Request.Context()
	notes, err := h.store.GetUnorganizedNotes(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	folders, err := h.store.GetAllFolders(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	debuglog.Debug(debuglog.Basic, "organizing %d unorganized notes against %d folders (dry run %t)", len(notes), len(folders), dryRun)

	result, err := h.organizer.Organize(ctx, notes, folders, h.maxTokensPerCall)
	if err != nil {
		writeError(c, err)
		return
	}
	if dryRun {
		c.JSON(http.StatusOK, result)
		return
	}
	h.apply(c, result)
}

// Apply godoc
// @Summary  Create suggested folders and assign notes
// @Tags     folders
// @Accept   json
// @Produce  json
// @Param    result body domain.OrganizationResult true "a result returned by organize"
// @Success  200 {object} domain.ApplyResult
// @Security ApiKeyAuth
// @Router   /api/folders/organize/apply [post]
func (h *FoldersHandler) Apply(c *gin.Context) {
	var result domain.OrganizationResult
	if err := c.ShouldBindJSON(&result); err != nil {
		badRequest(c, err.Error())
		return
	}
	h.apply(c, &result)
}

func (h *FoldersHandler) apply(c *gin.Context, result *domain.OrganizationResult) {
	applied, err := h.store.ApplyOrganization(c.Request.Context(), result)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, applied)
}
