package errorx

import (
	"errors"
	"fmt"
)

// 业务错误定义
var (
	ErrVendorNotFound    = errors.New("vendor not found")
	ErrAliasNotMapped    = errors.New("alias not mapped to any vendor")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrInvoiceConfirmed  = errors.New("invoice already confirmed")
	ErrInvalidTransition = errors.New("invalid invoice status transition")
	ErrInvalidPeriod     = errors.New("invalid billing period")
)

// ConfigError 费率配置缺失错误
// 单个费用项缺少单价且没有兜底默认值时返回，
// 只影响该费用项，不中断整体计算。
type ConfigError struct {
	Item string
}

// Error 实现 error 接口
func (e *ConfigError) Error() string {
	return fmt.Sprintf("rate entry missing for item %q and no default defined", e.Item)
}

// NewConfigError 创建费率配置错误
func NewConfigError(item string) *ConfigError {
	return &ConfigError{Item: item}
}

// SourceError 数据源结构性错误
// 某个数据源缺少必需的时间戳列等结构问题时返回，
// 该数据源对应的费用项缺席，其余数据源继续参与计算。
type SourceError struct {
	Source string
	Reason string
}

// Error 实现 error 接口
func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s unusable: %s", e.Source, e.Reason)
}

// NewSourceError 创建数据源错误
func NewSourceError(source, reason string) *SourceError {
	return &SourceError{Source: source, Reason: reason}
}

// PersistError 持久化错误
// 发票写入事务失败时返回，向调用方传播，不留下部分写入。
type PersistError struct {
	Op  string
	Err error
}

// Error 实现 error 接口
func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s failed: %v", e.Op, e.Err)
}

// Unwrap 返回底层错误
func (e *PersistError) Unwrap() error {
	return e.Err
}

// NewPersistError 创建持久化错误
func NewPersistError(op string, err error) *PersistError {
	return &PersistError{Op: op, Err: err}
}
