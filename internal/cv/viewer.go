package cv

// ExportContentType 是导出文件的 MIME 类型。
const ExportContentType = "text/plain"

// Export 是可供下载的纯文本产物。
type Export struct {
	Filename    string
	ContentType string
	Body        string
}

// Viewer 持有当前选中的条目（按引用而非位置）。
type Viewer struct {
	selected *Entry
}

func NewViewer() *Viewer {
	return &Viewer{}
}

// Select 替换当前选中项。
func (v *Viewer) Select(entry *Entry) {
	v.selected = entry
}

// Clear 清空选中项。
func (v *Viewer) Clear() {
	v.selected = nil
}

// Selected 返回当前选中项，未选中时为 nil。
func (v *Viewer) Selected() *Entry {
	return v.selected
}

// IsSelected reports whether entry is the current selection.
func (v *Viewer) IsSelected(entry *Entry) bool {
	return entry != nil && v.selected == entry
}

// Export 生成选中条目的文本导出；没有选中项时返回 false，调用方应当什么都不做。
func (v *Viewer) Export() (Export, bool) {
	if v.selected == nil {
		return Export{}, false
	}
	return Export{
		Filename:    v.selected.ExportFilename(),
		ContentType: ExportContentType,
		Body:        v.selected.Text(),
	}, true
}
