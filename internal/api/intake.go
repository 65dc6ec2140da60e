package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cvform/internal/api/middleware"
	"cvform/internal/cv"
	"cvform/internal/form"
	"cvform/internal/scan"
)

const rejectedImageMessage = "Image was rejected by the virus scanner"

var (
	errImageTooLarge  = errors.New("image exceeds upload limit")
	errSubmissionBind = errors.New("bind submission")
)

// submitRequest 对应 HTML 表单与 /v1/entries 的 multipart 字段，图片单独读取。
type submitRequest struct {
	FullName   string `form:"fullName"`
	Email      string `form:"email"`
	Phone      string `form:"phone"`
	Experience string `form:"experience"`
}

// readSubmission 解析一次提交。
// 图片未通过扫描时返回图片字段的 ValidationError，其余错误均视为请求或系统错误。
func (h *EntryHandler) readSubmission(c *gin.Context) (form.Values, *form.ValidationError, error) {
	var req submitRequest
	if err := c.ShouldBind(&req); err != nil {
		return form.Values{}, nil, fmt.Errorf("%w: %w", errSubmissionBind, err)
	}

	values := form.Values{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Experience: req.Experience,
	}

	header, err := c.FormFile(string(form.Image))
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return values, nil, nil
	case err != nil:
		return values, nil, fmt.Errorf("read image field: %w", err)
	}

	data, err := h.readImage(header)
	if err != nil {
		return values, nil, err
	}

	if err := h.scanner.Scan(c.Request.Context(), data); err != nil {
		if errors.Is(err, scan.ErrInfected) {
			middleware.LoggerFromContext(c).Warn("image rejected by scanner",
				"filename", header.Filename,
				"reason", err.Error(),
			)
			return values, &form.ValidationError{Field: form.Image, Message: rejectedImageMessage}, nil
		}
		return values, nil, fmt.Errorf("scan image: %w", err)
	}

	values.Image = cv.NewImage(header.Filename, header.Header.Get("Content-Type"), data)
	return values, nil, nil
}

func (h *EntryHandler) readImage(header *multipart.FileHeader) ([]byte, error) {
	if header.Size > h.maxUploadBytes {
		return nil, errImageTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return nil, errImageTooLarge
	}
	return data, nil
}

// submissionStatus 把 readSubmission 的错误映射为 HTTP 状态码。
func submissionStatus(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, errImageTooLarge), errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errSubmissionBind):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parsePosition(c *gin.Context) (int, bool) {
	position, err := strconv.Atoi(c.Param("index"))
	if err != nil || position < 0 {
		return 0, false
	}
	return position, true
}
