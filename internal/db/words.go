package db

import "gorm.io/gorm"

// WordStore serves dictionary word lists from the words table. It satisfies
// the engine's WordSource interface.
type WordStore struct {
	conn *gorm.DB
}

func NewWordStore(conn *gorm.DB) *WordStore {
	return &WordStore{conn: conn}
}

func (s *WordStore) WordsByCategory(category string) ([]string, error) {
	if s == nil || s.conn == nil {
		return nil, nil
	}
	var words []string
	err := s.conn.Model(&Word{}).
		Where("category = ?", category).
		Order("text asc").
		Pluck("text", &words).Error
	if err != nil {
		return nil, err
	}
	return words, nil
}

func (s *WordStore) Categories() ([]string, error) {
	if s == nil || s.conn == nil {
		return nil, nil
	}
	var categories []string
	err := s.conn.Model(&Word{}).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
