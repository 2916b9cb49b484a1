package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"equipment_borrow/api"
)

// UserInfoKey 本地只保存这一个键
const UserInfoKey = "userInfo"

// UserSession 客户端本地保存的最小会话记录
type UserSession struct {
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	RoleID api.Role `json:"idRole"`
}

func (u UserSession) IsModerator() bool { return u.RoleID == api.RoleModerator }

// LocalStore 注入到各界面的会话读写接口；Load 在没有会话时返回 (nil, nil)
type LocalStore interface {
	Load(ctx context.Context) (*UserSession, error)
	Save(ctx context.Context, s UserSession) error
	Clear(ctx context.Context) error
}

// FileStore 把 {"userInfo": {...}} 写到一个 JSON 文件
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context) (*UserSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	raw, ok := doc[UserInfoKey]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	var s UserSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", UserInfoKey, err)
	}
	return &s, nil
}

func (f *FileStore) Save(ctx context.Context, s UserSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := json.Marshal(map[string]UserSession{UserInfoKey: s})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	// 先写临时文件再 rename，避免写一半
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// MemoryStore 测试和一次性运行用
type MemoryStore struct {
	mu  sync.Mutex
	cur *UserSession
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Load(ctx context.Context) (*UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cur == nil {
		return nil, nil
	}
	cp := *m.cur
	return &cp, nil
}

func (m *MemoryStore) Save(ctx context.Context, s UserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = &s
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = nil
	return nil
}
