package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cvform/internal/cv"
	"cvform/internal/form"
)

// Workspace 是单个浏览器会话的全部状态：表单、条目列表与当前选中项。
// 所有操作在同一把锁下串行执行，一个动作处理完才会处理下一个。
type Workspace struct {
	mu       sync.Mutex
	form     *form.Controller
	store    *cv.Store
	viewer   *cv.Viewer
	lastSeen time.Time
	now      func() time.Time
}

// FormState 是表单渲染所需的只读快照。
type FormState struct {
	Values  form.Values
	Errors  map[string]string
	Touched map[string]bool
}

// Snapshot 是页面渲染所需的只读快照。
type Snapshot struct {
	Form          FormState
	Entries       []*cv.Entry
	Selected      *cv.Entry
	SelectedIndex int
}

func newWorkspace(now func() time.Time) *Workspace {
	return &Workspace{
		form:     form.NewController(),
		store:    cv.NewStore(),
		viewer:   cv.NewViewer(),
		lastSeen: now(),
		now:      now,
	}
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return newWorkspace(time.Now)
}

func (w *Workspace) touch() {
	w.lastSeen = w.now()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// Submit 把提交的字段写入表单并执行提交。
// values.Image 为 nil 时沿用表单里已选择的图片，因为浏览器在重新渲染后不会回填文件输入框。
func (w *Workspace) Submit(values form.Values) (*cv.Entry, form.Errors, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	w.apply(values)

	var created *cv.Entry
	errs, ok := w.form.Submit(func(v form.Values) {
		created = &cv.Entry{
			FullName:   v.FullName,
			Email:      v.Email,
			Phone:      v.Phone,
			Image:      v.Image,
			Experience: v.Experience,
			CreatedAt:  w.now(),
		}
		w.store.Append(created)
	})
	return created, errs, ok
}

// Reject 写入提交的字段后以 err 中止提交，条目不会被追加。
func (w *Workspace) Reject(values form.Values, err *form.ValidationError) form.Errors {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	w.apply(values)
	return w.form.Reject(err)
}

func (w *Workspace) apply(values form.Values) {
	for _, f := range form.Fields {
		if f.IsText() {
			// 只会因未知字段失败，这里的字段来自固定列表。
			_ = w.form.SetText(f, values.Text(f))
		}
	}
	if values.Image != nil {
		w.form.SetImage(values.Image)
	}
}

// UpdateField 处理单个文本字段的输入或失焦事件。
func (w *Workspace) UpdateField(f form.Field, value string, blur bool) (FormState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	if err := w.form.SetText(f, value); err != nil {
		return FormState{}, err
	}
	if blur {
		w.form.Touch(f)
	}
	return w.formState(), nil
}

// FormState returns the current form snapshot.
func (w *Workspace) FormState() FormState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.formState()
}

// Select 选中指定位置的条目。
func (w *Workspace) Select(position int) (*cv.Entry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	entry, err := w.store.At(position)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	w.viewer.Select(entry)
	return entry, nil
}

// ClearSelection 清空选中项。
func (w *Workspace) ClearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	w.viewer.Clear()
}

// Delete 删除指定位置的条目；若被删的正是选中项则同时清空选中。
func (w *Workspace) Delete(position int) (*cv.Entry, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	removed, err := w.store.RemoveAt(position)
	if err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}
	if w.viewer.IsSelected(removed) {
		w.viewer.Clear()
	}
	return removed, nil
}

// Export 导出选中条目；没有选中项时返回 false。
func (w *Workspace) Export() (cv.Export, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	return w.viewer.Export()
}

// EntryImage 借出指定条目的图片用于一次响应，图片字节只读。
func (w *Workspace) EntryImage(position int) (*cv.Image, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry, err := w.store.At(position)
	if err != nil {
		return nil, err
	}
	if entry.Image == nil {
		return nil, errors.New("entry has no image")
	}
	return entry.Image, nil
}

// SelectedImage 借出当前选中条目的图片。
func (w *Workspace) SelectedImage() (*cv.Image, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	selected := w.viewer.Selected()
	if selected == nil || selected.Image == nil {
		return nil, false
	}
	return selected.Image, true
}

// Selected returns the selected entry and its current position.
func (w *Workspace) Selected() (*cv.Entry, int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	selected := w.viewer.Selected()
	return selected, w.store.IndexOf(selected)
}

// IndexOf returns the current position of entry, or -1 if it is no longer listed.
func (w *Workspace) IndexOf(entry *cv.Entry) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.IndexOf(entry)
}

// Snapshot 返回渲染整页所需的数据。
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()

	selected := w.viewer.Selected()
	return Snapshot{
		Form:          w.formState(),
		Entries:       w.store.List(),
		Selected:      selected,
		SelectedIndex: w.store.IndexOf(selected),
	}
}

func (w *Workspace) formState() FormState {
	touched := make(map[string]bool, len(form.Fields))
	for _, f := range form.Fields {
		if w.form.Touched(f) {
			touched[string(f)] = true
		}
	}
	return FormState{
		Values:  w.form.Values(),
		Errors:  w.form.VisibleErrors().Messages(),
		Touched: touched,
	}
}
