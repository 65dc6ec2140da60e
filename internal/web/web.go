package web

import (
	"embed"
	"html/template"

	"cvform/internal/form"
	"cvform/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the template name rendered for the main page.
const PageTemplate = "page.html"

// EmptyListMessage 是列表为空时显示的占位文本。
const EmptyListMessage = "No CV's added yet."

// Templates 解析内嵌模板，供 gin.Engine.SetHTMLTemplate 使用。
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// FieldView 是表单中单个字段的渲染数据。
type FieldView struct {
	Name  string
	Value string
	Error string
}

// Row 是列表中的一行。
type Row struct {
	Index    int
	FullName string
	Email    string
	Phone    string
	Selected bool
}

// Detail 是详情面板的数据。
type Detail struct {
	Index      int
	FullName   string
	Email      string
	Phone      string
	Experience string
}

// Page is the view model for PageTemplate.
type Page struct {
	Fields        map[string]FieldView
	ImageAttached string
	Rows          []Row
	Detail        *Detail
	EmptyMessage  string
}

// NewPage 把 Workspace 快照转换为页面数据。
func NewPage(snap session.Snapshot) Page {
	p := Page{
		Fields:       make(map[string]FieldView, len(form.Fields)),
		Rows:         make([]Row, 0, len(snap.Entries)),
		EmptyMessage: EmptyListMessage,
	}

	for _, f := range form.Fields {
		p.Fields[string(f)] = FieldView{
			Name:  string(f),
			Value: snap.Form.Values.Text(f),
			Error: snap.Form.Errors[string(f)],
		}
	}
	if img := snap.Form.Values.Image; img != nil {
		p.ImageAttached = img.Filename
	}

	for i, e := range snap.Entries {
		p.Rows = append(p.Rows, Row{
			Index:    i,
			FullName: e.FullName,
			Email:    e.Email,
			Phone:    e.Phone,
			Selected: snap.Selected == e,
		})
	}

	if s := snap.Selected; s != nil {
		p.Detail = &Detail{
			Index:      snap.SelectedIndex,
			FullName:   s.FullName,
			Email:      s.Email,
			Phone:      s.Phone,
			Experience: s.Experience,
		}
	}
	return p
}
