package model

import "github.com/google/uuid"

// Session явный контекст вызывающего: кто спрашивает и от чьего имени.
// Передаётся в каждый вызов сервиса, нигде не хранится
type Session struct {
	AccountID        uuid.UUID
	Role             Role
	LinkedAccountIDs []uuid.UUID // дети родителя
}

// Owns проверяет принадлежит ли аккаунт вызывающему (сам или связанный)
func (s Session) Owns(id uuid.UUID) bool {
	if id == s.AccountID {
		return true
	}
	for _, linked := range s.LinkedAccountIDs {
		if linked == id {
			return true
		}
	}
	return false
}
