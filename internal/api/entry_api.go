package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvform/internal/cv"
	"cvform/internal/errcode"
	"cvform/internal/metrics"
)

type entryResponse struct {
	Index      int       `json:"index"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Experience string    `json:"experience"`
	ImageURL   string    `json:"image_url,omitempty"`
	Selected   bool      `json:"selected"`
	CreatedAt  time.Time `json:"created_at"`
}

type selectionResponse struct {
	Selected *entryResponse `json:"selected"`
}

func newEntryResponse(index int, e *cv.Entry, selected bool) entryResponse {
	resp := entryResponse{
		Index:      index,
		FullName:   e.FullName,
		Email:      e.Email,
		Phone:      e.Phone,
		Experience: e.Experience,
		Selected:   selected,
		CreatedAt:  e.CreatedAt,
	}
	if e.Image != nil {
		resp.ImageURL = fmt.Sprintf("/entries/%d/image", index)
	}
	return resp
}

// ListEntries 返回当前会话的全部条目，按添加顺序排列。
func (h *EntryHandler) ListEntries(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}

	snap := ws.Snapshot()
	items := make([]entryResponse, 0, len(snap.Entries))
	for i, e := range snap.Entries {
		items = append(items, newEntryResponse(i, e, e == snap.Selected))
	}
	c.JSON(http.StatusOK, gin.H{"entries": items})
}

// CreateEntry 以 multipart 表单提交新条目。
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}

	entry, errs, err := h.submit(c, ws)
	if err != nil {
		_ = c.Error(err)
		switch status := submissionStatus(err); status {
		case http.StatusRequestEntityTooLarge:
			ErrorWithCode(c, status, errcode.ImageTooLarge, "image exceeds upload limit")
		case http.StatusBadRequest:
			BadRequest(c, err.Error())
		default:
			Internal(c, "failed to process submission")
		}
		return
	}
	if entry == nil {
		ValidationFailed(c, errs.Messages())
		return
	}

	c.JSON(http.StatusCreated, newEntryResponse(ws.IndexOf(entry), entry, false))
}

// DeleteEntry 删除指定位置的条目。
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	position, ok := parsePosition(c)
	if !ok {
		NotFound(c, "entry not found")
		return
	}
	if _, err := ws.Delete(position); err != nil {
		NotFound(c, "entry not found")
		return
	}
	metrics.EntryDeleted()
	c.Status(http.StatusNoContent)
}

// SelectEntry 选中指定位置的条目。
func (h *EntryHandler) SelectEntry(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	position, ok := parsePosition(c)
	if !ok {
		NotFound(c, "entry not found")
		return
	}
	entry, err := ws.Select(position)
	if err != nil {
		NotFound(c, "entry not found")
		return
	}
	resp := newEntryResponse(position, entry, true)
	c.JSON(http.StatusOK, selectionResponse{Selected: &resp})
}

// GetSelection 返回当前选中项，未选中时 selected 为 null。
func (h *EntryHandler) GetSelection(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	entry, position := ws.Selected()
	if entry == nil {
		c.JSON(http.StatusOK, selectionResponse{})
		return
	}
	resp := newEntryResponse(position, entry, true)
	c.JSON(http.StatusOK, selectionResponse{Selected: &resp})
}

// ClearSelection 清空选中项。
func (h *EntryHandler) ClearSelection(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	ws.ClearSelection()
	c.Status(http.StatusNoContent)
}
