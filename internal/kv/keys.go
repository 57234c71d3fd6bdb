package kv

// Storage keys. Each names an independent JSON document.
const (
	KeyTasks       = "wph_tasks_data"
	KeyUsers       = "wph_user_data"
	KeyAuthSession = "wph_auth_session"
	KeyPreferences = "wph_user_preferences"
)
