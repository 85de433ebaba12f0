package repository

import "errors"

var (
	// ErrNotFound запись для обновления не найдена
	ErrNotFound = errors.New("not found")
	// ErrConflict нарушен уникальный индекс, например инструктор уже занят в эту минуту
	ErrConflict = errors.New("conflict")
)
