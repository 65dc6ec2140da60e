package api

import (
	"errors"
	"mime"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"cvform/internal/api/middleware"
	"cvform/internal/cv"
	"cvform/internal/form"
	"cvform/internal/metrics"
	"cvform/internal/scan"
	"cvform/internal/session"
	"cvform/internal/web"
)

const exportContentType = cv.ExportContentType + "; charset=utf-8"

// EntryHandler 处理表单提交、列表操作、图片与导出，HTML 与 JSON 接口共用。
type EntryHandler struct {
	scanner        scan.Scanner
	maxUploadBytes int64
}

// NewEntryHandler 构造 EntryHandler。
func NewEntryHandler(scanner scan.Scanner, maxUploadBytes int64) *EntryHandler {
	if scanner == nil {
		scanner = scan.Nop{}
	}
	return &EntryHandler{
		scanner:        scanner,
		maxUploadBytes: maxUploadBytes,
	}
}

func workspaceOrAbort(c *gin.Context) (*session.Workspace, bool) {
	ws, ok := middleware.WorkspaceFromContext(c)
	if !ok {
		Internal(c, "session unavailable")
		c.Abort()
		return nil, false
	}
	return ws, true
}

func (h *EntryHandler) renderPage(c *gin.Context, status int, ws *session.Workspace) {
	c.HTML(status, web.PageTemplate, web.NewPage(ws.Snapshot()))
}

// Page 渲染整页：表单、列表与详情。
func (h *EntryHandler) Page(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	h.renderPage(c, http.StatusOK, ws)
}

// Submit 处理 HTML 表单提交，成功后重定向回首页。
func (h *EntryHandler) Submit(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}

	entry, _, err := h.submit(c, ws)
	if err != nil {
		_ = c.Error(err)
		status := submissionStatus(err)
		c.String(status, http.StatusText(status))
		return
	}
	if entry == nil {
		h.renderPage(c, http.StatusUnprocessableEntity, ws)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// submit 读取并提交一次表单。entry 为 nil 且 err 为 nil 表示校验未通过，errs 为各字段的错误。
func (h *EntryHandler) submit(c *gin.Context, ws *session.Workspace) (*cv.Entry, form.Errors, error) {
	values, rejected, err := h.readSubmission(c)
	if err != nil {
		return nil, nil, err
	}

	log := middleware.LoggerFromContext(c)

	if rejected != nil {
		errs := ws.Reject(values, rejected)
		metrics.SubmissionRejected(fieldNames(errs))
		log.Info("submission rejected", "fields", fieldNames(errs))
		return nil, errs, nil
	}

	entry, errs, ok := ws.Submit(values)
	if !ok {
		metrics.SubmissionRejected(fieldNames(errs))
		log.Info("submission failed validation", "fields", fieldNames(errs))
		return nil, errs, nil
	}

	metrics.EntrySubmitted()
	log.Info("entry added",
		"full_name", entry.FullName,
		"image_type", entry.Image.ContentType,
		"image_bytes", entry.Image.Size(),
	)
	return entry, nil, nil
}

// Show 选中一条记录并在详情面板中展示。
func (h *EntryHandler) Show(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	position, ok := parsePosition(c)
	if !ok {
		h.renderPage(c, http.StatusNotFound, ws)
		return
	}
	if _, err := ws.Select(position); err != nil {
		h.pageError(c, ws, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Delete 删除一条记录。
func (h *EntryHandler) Delete(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	position, ok := parsePosition(c)
	if !ok {
		h.renderPage(c, http.StatusNotFound, ws)
		return
	}
	if _, err := ws.Delete(position); err != nil {
		h.pageError(c, ws, err)
		return
	}
	metrics.EntryDeleted()
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *EntryHandler) pageError(c *gin.Context, ws *session.Workspace, err error) {
	_ = c.Error(err)
	status := http.StatusInternalServerError
	if errors.Is(err, cv.ErrEntryNotFound) {
		status = http.StatusNotFound
	}
	h.renderPage(c, status, ws)
}

// EntryImage 返回列表中指定条目的缩略图。
func (h *EntryHandler) EntryImage(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	position, ok := parsePosition(c)
	if !ok {
		NotFound(c, "entry not found")
		return
	}
	img, err := ws.EntryImage(position)
	if err != nil {
		NotFound(c, "entry not found")
		return
	}
	writeImage(c, img)
}

// SelectedImage 返回详情面板中选中条目的图片。
func (h *EntryHandler) SelectedImage(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}
	img, ok := ws.SelectedImage()
	if !ok {
		NotFound(c, "no selection")
		return
	}
	writeImage(c, img)
}

// Export 把选中条目作为纯文本附件下载；没有选中项时不做任何事。
func (h *EntryHandler) Export(c *gin.Context) {
	ws, ok := workspaceOrAbort(c)
	if !ok {
		return
	}

	export, ok := ws.Export()
	metrics.Export(ok)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.Filename}))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, exportContentType, []byte(export.Body))
}

// 图片 URL 按位置寻址，删除后同一地址会指向别的条目，因此不允许缓存。
func writeImage(c *gin.Context, img *cv.Image) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

func fieldNames(errs form.Errors) []string {
	names := make([]string, 0, len(errs))
	for f := range errs {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
