package question

import "sort"

// Service exposes read access to the loaded question bank.
type Service struct {
	bank Bank
}

// NewService wraps an already loaded bank.
func NewService(bank Bank) *Service {
	return &Service{bank: bank}
}

// Categories lists selectable categories sorted by name.
func (s *Service) Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(s.bank))
	for name, records := range s.bank {
		infos = append(infos, CategoryInfo{Name: name, QuestionCount: len(records)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Bank returns a snapshot of the bank safe for callers to hold.
func (s *Service) Bank() Bank {
	return s.bank.Clone()
}
