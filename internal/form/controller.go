package form

import (
	"errors"
	"fmt"

	"cvform/internal/cv"
)

// ErrUnknownField is returned when a text update names a field that does not exist
// or is not a text field.
var ErrUnknownField = errors.New("form: unknown text field")

// Values 是表单当前的字段值。
type Values struct {
	FullName   string
	Email      string
	Phone      string
	Image      *cv.Image
	Experience string
}

func (v Values) value(f Field) any {
	switch f {
	case FullName:
		return v.FullName
	case Email:
		return v.Email
	case Phone:
		return v.Phone
	case Image:
		return v.Image != nil
	case Experience:
		return v.Experience
	}
	return nil
}

// Text returns the value of a text field.
func (v Values) Text(f Field) string {
	if s, ok := v.value(f).(string); ok {
		return s
	}
	return ""
}

// Controller 持有表单的字段值、校验错误与 touched 标记。
// 错误只有在字段被 touched 之后才对外可见。
type Controller struct {
	values  Values
	touched map[Field]bool
	errors  Errors
}

// NewController 返回空白且未 touched 的表单。
func NewController() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Values 返回当前字段值。
func (c *Controller) Values() Values {
	return c.values
}

// SetText 更新文本字段并重新计算该字段的错误，但不标记 touched。
func (c *Controller) SetText(f Field, value string) error {
	switch f {
	case FullName:
		c.values.FullName = value
	case Email:
		c.values.Email = value
	case Phone:
		c.values.Phone = value
	case Experience:
		c.values.Experience = value
	default:
		return fmt.Errorf("set %q: %w", f, ErrUnknownField)
	}
	c.evaluate(f)
	return nil
}

// SetImage 只更新图片字段的值，不触发校验。
func (c *Controller) SetImage(img *cv.Image) {
	c.values.Image = img
}

// Touch 标记字段为 touched（失焦）并校验该字段。
func (c *Controller) Touch(f Field) {
	if _, ok := rules[f]; !ok {
		return
	}
	c.touched[f] = true
	c.evaluate(f)
}

// Touched reports whether f has been touched.
func (c *Controller) Touched(f Field) bool {
	return c.touched[f]
}

// Error 返回字段的可见错误消息。
func (c *Controller) Error(f Field) string {
	if !c.touched[f] {
		return ""
	}
	return c.errors.Message(f)
}

// VisibleErrors 返回所有 touched 字段上的错误。
func (c *Controller) VisibleErrors() Errors {
	out := Errors{}
	for f, err := range c.errors {
		if c.touched[f] {
			out[f] = err
		}
	}
	return out
}

// Validate 执行完整校验并刷新错误集合。
func (c *Controller) Validate() Errors {
	c.errors = ValidateValues(c.values)
	out := make(Errors, len(c.errors))
	for f, err := range c.errors {
		out[f] = err
	}
	return out
}

// Submit 完整校验后提交。
// 校验失败时所有字段被标记为 touched 并返回错误；成功时把当前值交给 accept，然后重置表单。
func (c *Controller) Submit(accept func(Values)) (Errors, bool) {
	errs := c.Validate()
	if len(errs) > 0 {
		for _, f := range Fields {
			c.touched[f] = true
		}
		return errs, false
	}

	accept(c.values)
	c.Reset()
	return nil, true
}

// Reject 以外部原因（例如图片未通过扫描）中止提交：
// 与校验失败一样标记全部字段为 touched，并用 err 覆盖对应字段的错误。
func (c *Controller) Reject(err *ValidationError) Errors {
	errs := c.Validate()
	errs[err.Field] = err
	c.errors[err.Field] = err
	for _, f := range Fields {
		c.touched[f] = true
	}
	return errs
}

// Reset 清空字段值、错误与 touched 标记，包括已选择的图片。
func (c *Controller) Reset() {
	c.values = Values{}
	c.touched = make(map[Field]bool, len(Fields))
	c.errors = Errors{}
}

func (c *Controller) evaluate(f Field) {
	if err := checkField(f, c.values); err != nil {
		c.errors[f] = err
		return
	}
	delete(c.errors, f)
}
