package errorx

import "fmt"

// Warnings 警告累积列表
// 费用项级别的失败被就地恢复，以人类可读文案记入该列表，
// 计算继续执行后续费用项。
type Warnings struct {
	list []string
}

// Addf 追加一条格式化警告
func (w *Warnings) Addf(format string, args ...interface{}) {
	w.list = append(w.list, fmt.Sprintf(format, args...))
}

// Add 追加一条警告
func (w *Warnings) Add(msg string) {
	w.list = append(w.list, msg)
}

// List 返回全部警告（可能为空切片）
func (w *Warnings) List() []string {
	if w.list == nil {
		return []string{}
	}
	return w.list
}

// Empty 是否没有任何警告
func (w *Warnings) Empty() bool {
	return len(w.list) == 0
}
