package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"equipment_borrow/api"
)

func (c *Client) Equipment(ctx context.Context) ([]api.Equipment, error) {
	raw, err := c.list(ctx, http.MethodGet, api.PathEquipment, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[api.Equipment](api.PathEquipment, raw), nil
}

func (c *Client) Categories(ctx context.Context) ([]api.Category, error) {
	raw, err := c.list(ctx, http.MethodGet, api.PathCategories, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[api.Category](api.PathCategories, raw), nil
}

func (c *Client) Classrooms(ctx context.Context) ([]api.Classroom, error) {
	raw, err := c.list(ctx, http.MethodGet, api.PathClassrooms, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[api.Classroom](api.PathClassrooms, raw), nil
}

// Borrow 只做必填检查，库存等校验交给服务端
func (c *Client) Borrow(ctx context.Context, in api.BorrowInput) (api.Result, error) {
	switch {
	case strings.TrimSpace(in.Email) == "":
		return api.Result{}, fmt.Errorf("%w: email", ErrMissingField)
	case strings.TrimSpace(in.EquipmentName) == "":
		return api.Result{}, fmt.Errorf("%w: ten_thiet_bi", ErrMissingField)
	case strings.TrimSpace(in.ClassroomName) == "":
		return api.Result{}, fmt.Errorf("%w: ten_phong_hoc", ErrMissingField)
	case in.Quantity <= 0:
		return api.Result{}, fmt.Errorf("%w: so_luong_muon", ErrMissingField)
	}
	return c.mutate(ctx, api.PathBorrow, in)
}

func (c *Client) MyRequests(ctx context.Context, email string) ([]api.BorrowRequest, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrNoSession
	}
	raw, err := c.list(ctx, http.MethodPost, api.PathMyRequests, api.MyRequestsInput{Email: email})
	if err != nil {
		return nil, err
	}
	return decodeList[api.BorrowRequest](api.PathMyRequests, raw), nil
}

// CancelRequest 理由为空时使用默认理由
func (c *Client) CancelRequest(ctx context.Context, requestID int64, reason string) (api.Result, error) {
	if strings.TrimSpace(reason) == "" {
		reason = api.DefaultCancelReason
	}
	return c.mutate(ctx, api.PathCancelRequest, api.CancelInput{RequestID: requestID, Reason: reason})
}

func (c *Client) AllRequests(ctx context.Context) ([]api.BorrowRequest, error) {
	raw, err := c.list(ctx, http.MethodGet, api.PathAllRequests, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[api.BorrowRequest](api.PathAllRequests, raw), nil
}

func (c *Client) ApprovalStatuses(ctx context.Context) ([]api.ApprovalStatus, error) {
	raw, err := c.list(ctx, http.MethodGet, api.PathApprovalStatuses, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[api.ApprovalStatus](api.PathApprovalStatuses, raw), nil
}

// SetRequestStatus 审批员设置状态；reason 为空时 ly_do_huy 发 null
func (c *Client) SetRequestStatus(ctx context.Context, req api.BorrowRequest, status, reason string) (api.Result, error) {
	if strings.TrimSpace(status) == "" {
		return api.Result{}, ErrStatusRequired
	}
	in := api.SetStatusInput{
		RequestID:     req.ID,
		EquipmentName: req.EquipmentName,
		Status:        status,
	}
	if reason != "" {
		in.Reason = &reason
	}
	return c.mutate(ctx, api.PathSetRequestStatus, in)
}

func (c *Client) ClearSession(ctx context.Context) error {
	var res api.Result
	return c.Call(ctx, http.MethodPost, api.PathClearSession, nil, &res)
}
