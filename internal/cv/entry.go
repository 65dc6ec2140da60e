package cv

import (
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Image 表示条目持有的原始图片字节，创建后只读。
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewImage 复制上传的字节并嗅探真实的 Content-Type。
// 客户端声明的类型仅在嗅探结果为通用二进制时作为兜底。
func NewImage(filename, declaredType string, data []byte) *Image {
	buf := make([]byte, len(data))
	copy(buf, data)

	contentType := mimetype.Detect(buf).String()
	if contentType == "application/octet-stream" && declaredType != "" {
		contentType = declaredType
	}

	return &Image{
		Filename:    filename,
		ContentType: contentType,
		Data:        buf,
	}
}

// Size returns the number of image bytes.
func (img *Image) Size() int {
	if img == nil {
		return 0
	}
	return len(img.Data)
}

// Entry 是一份通过校验并提交的简历，创建后不再修改。
type Entry struct {
	FullName   string
	Email      string
	Phone      string
	Image      *Image
	Experience string
	CreatedAt  time.Time
}

// Text 生成导出用的纯文本，不包含图片。
func (e *Entry) Text() string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nExperience: %s",
		e.FullName,
		e.Email,
		e.Phone,
		e.Experience,
	)
}

// ExportFilename 返回下载文件名。
func (e *Entry) ExportFilename() string {
	return e.FullName + "_CV.txt"
}
