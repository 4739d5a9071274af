package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/classhub/domain"
)

// MaxAttachments is the number of files accepted per homework request
const MaxAttachments = 5

// HomeworkHandlers handles homework HTTP requests
type HomeworkHandlers struct {
	homeworkSvc domain.HomeworkService
	storage     domain.FileStorage
}

// NewHomeworkHandlers creates new homework handlers
func NewHomeworkHandlers(homeworkSvc domain.HomeworkService, storage domain.FileStorage) *HomeworkHandlers {
	return &HomeworkHandlers{homeworkSvc: homeworkSvc, storage: storage}
}

// HomeworkRequest is the JSON form of a homework create or update. Absent
// fields are left unchanged on update.
type HomeworkRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	ClassID     *string `json:"classId"`
}

// Create handles homework creation from a multipart form or a JSON body
func (h *HomeworkHandlers) Create(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	req, files, ok := h.bind(c)
	if !ok {
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		badRequest(c, "Invalid dueDate")
		return
	}

	// Role and required fields are checked before anything is written to disk
	if !actor.IsTeacher() {
		respondError(c, "HOMEWORK_CREATE_FAILED", domain.ErrForbidden)
		return
	}
	if strings.TrimSpace(deref(req.Title)) == "" || strings.TrimSpace(deref(req.ClassID)) == "" {
		badRequest(c, "Title and classId are required")
		return
	}

	paths, err := h.saveFiles(c, files)
	if err != nil {
		respondError(c, "HOMEWORK_UPLOAD_FAILED", err)
		return
	}

	hw, err := h.homeworkSvc.Create(c.Request.Context(), actor, domain.HomeworkInput{
		Title:       deref(req.Title),
		Description: deref(req.Description),
		DueDate:     dueDate,
		ClassID:     deref(req.ClassID),
		Files:       paths,
	})
	if err != nil {
		respondError(c, "HOMEWORK_CREATE_FAILED", err)
		return
	}

	c.JSON(http.StatusCreated, hw)
}

// ListByClass returns the homework of a class, newest first
func (h *HomeworkHandlers) ListByClass(c *gin.Context) {
	classID := strings.TrimSpace(c.Param("classId"))
	if classID == "" {
		badRequest(c, "classId is required")
		return
	}

	list, err := h.homeworkSvc.ListByClass(c.Request.Context(), classID)
	if err != nil {
		respondError(c, "HOMEWORK_LIST_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Get returns one homework
func (h *HomeworkHandlers) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	hw, err := h.homeworkSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "HOMEWORK_GET_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, hw)
}

// Update applies the submitted fields; uploaded files replace the attachment list
func (h *HomeworkHandlers) Update(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	req, files, ok := h.bind(c)
	if !ok {
		return
	}
	patch := domain.HomeworkPatch{
		Title:       req.Title,
		Description: req.Description,
		ClassID:     req.ClassID,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			badRequest(c, "Invalid dueDate")
			return
		}
		patch.DueDate = dueDate
	}

	if !actor.IsTeacher() {
		respondError(c, "HOMEWORK_UPDATE_FAILED", domain.ErrForbidden)
		return
	}

	if len(files) > 0 {
		// Nothing is written for a homework that does not exist
		if _, err := h.homeworkSvc.Get(c.Request.Context(), id); err != nil {
			respondError(c, "HOMEWORK_UPDATE_FAILED", err)
			return
		}
		paths, err := h.saveFiles(c, files)
		if err != nil {
			respondError(c, "HOMEWORK_UPLOAD_FAILED", err)
			return
		}
		patch.Files = paths
	}

	hw, err := h.homeworkSvc.Update(c.Request.Context(), actor, id, patch)
	if err != nil {
		respondError(c, "HOMEWORK_UPDATE_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, hw)
}

// Delete removes a homework
func (h *HomeworkHandlers) Delete(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.homeworkSvc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, "HOMEWORK_DELETE_FAILED", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// bind reads the homework fields and attachments from a multipart form, or
// the fields alone from a JSON body.
func (h *HomeworkHandlers) bind(c *gin.Context) (HomeworkRequest, []*multipart.FileHeader, bool) {
	var req HomeworkRequest

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request body")
			return req, nil, false
		}
		return req, nil, true
	}

	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "Invalid multipart form")
		return req, nil, false
	}
	field := func(name string) *string {
		if v, ok := form.Value[name]; ok && len(v) > 0 {
			s := v[0]
			return &s
		}
		return nil
	}
	req.Title = field("title")
	req.Description = field("description")
	req.DueDate = field("dueDate")
	req.ClassID = field("classId")

	files := form.File["files"]
	if len(files) > MaxAttachments {
		badRequest(c, fmt.Sprintf("At most %d files are allowed", MaxAttachments))
		return req, nil, false
	}
	return req, files, true
}

func (h *HomeworkHandlers) saveFiles(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		content, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		path, err := h.storage.Save(c.Request.Context(), fh.Filename, content)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// parseDueDate accepts RFC 3339 timestamps and plain dates. Empty means none.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: due date %q", domain.ErrInvalidRequest, s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
