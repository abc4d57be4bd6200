package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"inventory-system/pkg/types"
)

// Session - состояние клиента после входа: токен, роль, ФИО и снимок выпадающих списков.
// Создается один раз и передается всем, кому он нужен.
type Session struct {
	mu sync.RWMutex

	Token     string                          `json:"token"`
	Role      string                          `json:"role"`
	FullName  string                          `json:"full_name"`
	Dropdowns map[string][]types.DropdownItem `json:"dropdowns,omitempty"`
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Token != ""
}

// Clear сбрасывает все, включая списки. Вызывается при выходе.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = ""
	s.Role = ""
	s.FullName = ""
	s.Dropdowns = nil
}

func (s *Session) set(token, role, fullName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = token
	s.Role = role
	s.FullName = fullName
	s.Dropdowns = nil
}

func (s *Session) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Token
}

func (s *Session) setDropdowns(lists map[string][]types.DropdownItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Dropdowns = lists
}

// Dropdown возвращает список из снимка. false, если списка нет.
func (s *Session) Dropdown(name string) ([]types.DropdownItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.Dropdowns[name]
	return items, ok
}

// DropdownNames - имена списков в снимке по алфавиту.
func (s *Session) DropdownNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.Dropdowns))
	for name := range s.Dropdowns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot - копия полей без мьютекса, для вывода.
func (s *Session) Snapshot() (token, role, fullName string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Token, s.Role, s.FullName
}

// Save пишет сессию в файл с правами 0600.
func (s *Session) Save(path string) error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("сериализация сессии: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("создание каталога сессии: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("запись сессии: %w", err)
	}
	return nil
}

// Load читает сессию из файла. Отсутствующий файл - это пустая сессия, не ошибка.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.Clear()
			return nil
		}
		return fmt.Errorf("чтение сессии: %w", err)
	}

	var stored struct {
		Token     string                          `json:"token"`
		Role      string                          `json:"role"`
		FullName  string                          `json:"full_name"`
		Dropdowns map[string][]types.DropdownItem `json:"dropdowns"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("разбор сессии: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = stored.Token
	s.Role = stored.Role
	s.FullName = stored.FullName
	s.Dropdowns = stored.Dropdowns
	return nil
}

// Remove удаляет файл сессии, если он есть.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("удаление сессии: %w", err)
	}
	return nil
}
