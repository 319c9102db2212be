package restapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/noteweaver/noteweaver/internal/core"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
)

type NotesHandler struct {
	store      db.Store
	classifier *core.Classifier
}

type CreateNoteRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	FolderIDs []string `json:"folder_ids"`
}

type NoteFoldersRequest struct {
	FolderIDs []string `json:"folder_ids"`
}

type ClassifyRequest struct {
	NoteID string `json:"note_id"`
}

type ClassifyResponse struct {
	*domain.Classification
	Note *domain.Note `json:"note"`
}

func NewNotesHandler(r *gin.RouterGroup, store db.Store, classifier *core.Classifier) *NotesHandler {
	handler := &NotesHandler{store: store, classifier: classifier}
	notes := r.Group("/notes")
	notes.GET("", handler.List)
	notes.POST("", handler.Create)
	notes.GET("/:id", handler.Get)
	notes.PUT("/:id", handler.Update)
	notes.PATCH("/:id", handler.Update)
	notes.DELETE("/:id", handler.Delete)
	notes.GET("/:id/folders", handler.GetFolders)
	notes.PUT("/:id/folders", handler.SetFolders)

	r.POST("/ai/classify", handler.Classify)
	return handler
}

// List godoc
// @Summary  List notes
// @Tags     notes
// @Produce  json
// @Param    unorganized query bool false "only notes without folders"
// @Success  200 {array} domain.Note
// @Security ApiKeyAuth
// @Router   /api/notes [get]
func (h *NotesHandler) List(c *gin.Context) {
	var (
		notes []*domain.Note
		err   error
	)
	if c.Query("unorganized") == "true" {
		notes, err = h.store.GetUnorganizedNotes(c.Request.Context())
	} else {
		notes, err = h.store.GetAllNotes(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// Create godoc
// @Summary  Create a note
// @Tags     notes
// @Accept   json
// @Produce  json
// @Param    note body CreateNoteRequest true "note"
// @Success  201 {object} domain.Note
// @Failure  400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router   /api/notes [post]
func (h *NotesHandler) Create(c *gin.Context) {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(c, i18n.T("note_title_required"))
		return
	}
	note := &domain.Note{Title: req.Title, Body: req.Body, FolderIDs: req.FolderIDs}
	if err := h.store.CreateNote(c.Request.Context(), note); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *NotesHandler) Get(c *gin.Context) {
	note, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, note)
}

// Update godoc
// @Summary  Update note text or flags; omitted fields are unchanged
// @Tags     notes
// @Accept   json
// @Produce  json
// @Param    id   path string            true "note id"
// @Param    note body domain.NoteUpdate true "fields to change"
// @Success  200 {object} domain.Note
// @Failure  404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router   /api/notes/{id} [put]
func (h *NotesHandler) Update(c *gin.Context) {
	var update domain.NoteUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, err.Error())
		return
	}
	note, err := h.store.UpdateNote(c.Request.Context(), c.Param("id"), &update)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *NotesHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotesHandler) GetFolders(c *gin.Context) {
	note, ok := h.load(c)
	if !ok {
		return
	}
	h.writeNoteFolders(c, note)
}

// SetFolders replaces the folders of a note and returns them.
func (h *NotesHandler) SetFolders(c *gin.Context) {
	var req NoteFoldersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx := c.Request.Context()
	if err := h.store.SetNoteFolders(ctx, c.Param("id"), req.FolderIDs); err != nil {
		writeError(c, err)
		return
	}
	note, ok := h.load(c)
	if !ok {
		return
	}
	h.writeNoteFolders(c, note)
}

// Classify godoc
// @Summary  Classify a note as inspiration or task and record the result on the note
// @Tags     ai
// @Accept   json
// @Produce  json
// @Param    request body ClassifyRequest true "note to classify"
// @Success  200 {object} ClassifyResponse
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Failure  502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router   /api/ai/classify [post]
func (h *NotesHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.NoteID) == "" {
		badRequest(c, i18n.T("note_id_required"))
		return
	}
	classification, note, err := h.classifier.ClassifyNote(c.Request.Context(), req.NoteID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ClassifyResponse{Classification: classification, Note: note})
}

// load fetches the :id note, writing a 404 when it does not exist.
func (h *NotesHandler) load(c *gin.Context) (*domain.Note, bool) {
	id := c.Param("id")
	note, err := h.store.GetNote(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	if note == nil {
		writeError(c, fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(i18n.T("note_not_found"), id)))
		return nil, false
	}
	return note, true
}

func (h *NotesHandler) writeNoteFolders(c *gin.Context, note *domain.Note) {
	folders, err := h.store.GetAllFolders(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lo.Filter(folders, func(folder *domain.Folder, _ int) bool {
		return lo.Contains(note.FolderIDs, folder.ID)
	}))
}
