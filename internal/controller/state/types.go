package state

// UserState текущий шаг диалога пользователя
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	StateAwaitChildName UserState = "await_child_name" // /addchild без имени
	StateAwaitNote      UserState = "await_note"       // инструктор пишет заметку о ребёнке
)

// Ключи временных данных диалога
const (
	KeyChildID = "child_id"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]any
}
