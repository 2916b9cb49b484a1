package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport 网络层失败（连接、读取、非预期 HTTP 状态）
	ErrTransport = errors.New("transport failure")
	// ErrMalformed 响应体无法按预期解析
	ErrMalformed = errors.New("malformed response")

	ErrMissingField     = errors.New("missing required field")
	ErrStatusRequired   = errors.New("status is required")
	ErrNoSession        = errors.New("no local session")
	ErrAdminOnWeb       = errors.New("admin accounts must use the web interface")
	ErrUnsupportedRole  = errors.New("unsupported role")
	ErrLogoutInProgress = errors.New("logout already in progress")
	ErrLogoutDeclined   = errors.New("logout declined")
)

// BusinessError 服务端返回 success:false，Message 原样展示
type BusinessError struct {
	StatusCode int
	Message    string
}

func (e *BusinessError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("server rejected request (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return "server rejected request: " + e.Message
}

// MessageOf 取服务端原话，没有就用 fallback
func MessageOf(err error, fallback string) string {
	var be *BusinessError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return fallback
}
