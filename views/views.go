// Package views 终端界面的数据加载与渲染。
//
// 每个屏幕进入或执行写操作后都重新拉取，不在屏幕之间缓存。
package views

import (
	"context"

	"equipment_borrow/api"
)

// Result 加载结果，Err 非 nil 时 Value 为零值
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) OK() bool { return r.Err == nil }

// Load 把 (T, error) 调用包成 Result
func Load[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	v, err := fn(ctx)
	if err != nil {
		var zero T
		return Result[T]{Value: zero, Err: err}
	}
	return Result[T]{Value: v}
}

// CatalogSource 设备列表屏幕需要的调用，*gateway.Client 满足
type CatalogSource interface {
	Equipment(ctx context.Context) ([]api.Equipment, error)
	Categories(ctx context.Context) ([]api.Category, error)
	Classrooms(ctx context.Context) ([]api.Classroom, error)
	Borrow(ctx context.Context, in api.BorrowInput) (api.Result, error)
}

type RequestSource interface {
	MyRequests(ctx context.Context, email string) ([]api.BorrowRequest, error)
	CancelRequest(ctx context.Context, requestID int64, reason string) (api.Result, error)
}

type ModerationSource interface {
	AllRequests(ctx context.Context) ([]api.BorrowRequest, error)
	ApprovalStatuses(ctx context.Context) ([]api.ApprovalStatus, error)
	SetRequestStatus(ctx context.Context, req api.BorrowRequest, status, reason string) (api.Result, error)
}

func LoadCatalog(ctx context.Context, src CatalogSource) Result[[]api.Equipment] {
	return Load(ctx, src.Equipment)
}

func LoadCategories(ctx context.Context, src CatalogSource) Result[[]api.Category] {
	return Load(ctx, src.Categories)
}

func LoadClassrooms(ctx context.Context, src CatalogSource) Result[[]api.Classroom] {
	return Load(ctx, src.Classrooms)
}

func LoadMyRequests(ctx context.Context, src RequestSource, email string) Result[[]api.BorrowRequest] {
	return Load(ctx, func(ctx context.Context) ([]api.BorrowRequest, error) {
		return src.MyRequests(ctx, email)
	})
}

func LoadAllRequests(ctx context.Context, src ModerationSource) Result[[]api.BorrowRequest] {
	return Load(ctx, src.AllRequests)
}

func LoadApprovalStatuses(ctx context.Context, src ModerationSource) Result[[]api.ApprovalStatus] {
	return Load(ctx, src.ApprovalStatuses)
}
