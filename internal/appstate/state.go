package appstate

import "github.com/armonia-app/armonia-core/internal/auth"

// State is the full application state at one instant. Transitions take a
// State by value and return the next one; they never mutate shared slices
// in place.
type State struct {
	User      *auth.Session
	UserStats *UserStats
	Settings  AppSettings

	MoodEntries []MoodEntry
	CurrentMood string

	Activities          []Activity
	CompletedActivities []Activity

	Achievements         []Achievement
	UnlockedAchievements []Achievement

	IsLoading        bool
	Error            string
	SidebarCollapsed bool
}

func defaultSettings() AppSettings {
	return AppSettings{
		Theme: "system",
		Notifications: NotificationSettings{
			DailyReminder:     true,
			AchievementAlerts: true,
			WeeklyReport:      false,
		},
		Privacy: PrivacySettings{
			ShareStats:    false,
			AnonymousData: true,
		},
		Preferences: PreferenceSettings{
			DefaultMoodScale: "emoji",
			ReminderTime:     "20:00",
			Language:         "es",
		},
	}
}

func defaultState() State {
	return State{
		Settings:     defaultSettings(),
		Activities:   DefaultActivities(),
		Achievements: DefaultAchievements(),
	}
}

// DefaultActivities returns the built-in wellness exercise templates.
func DefaultActivities() []Activity {
	return []Activity{
		{
			ID:          "breathing-478",
			Title:       "Respiración 4-7-8",
			Description: "Inhala 4 segundos, sostén 7 y exhala 8 para calmar el sistema nervioso.",
			Category:    ActivityBreathing,
			Duration:    5,
			Difficulty:  DifficultyEasy,
		},
		{
			ID:          "body-scan",
			Title:       "Escaneo corporal",
			Description: "Recorre tu cuerpo con atención plena, de los pies a la cabeza.",
			Category:    ActivityMeditation,
			Duration:    15,
			Difficulty:  DifficultyMedium,
		},
		{
			ID:          "gratitude-journal",
			Title:       "Diario de gratitud",
			Description: "Escribe tres cosas por las que estás agradecido hoy.",
			Category:    ActivityJournaling,
			Duration:    10,
			Difficulty:  DifficultyEasy,
		},
		{
			ID:          "morning-stretch",
			Title:       "Estiramiento matutino",
			Description: "Secuencia suave de estiramientos para empezar el día.",
			Category:    ActivityExercise,
			Duration:    20,
			Difficulty:  DifficultyMedium,
		},
		{
			ID:          "mindful-walk",
			Title:       "Caminata consciente",
			Description: "Camina 30 minutos prestando atención a cada paso y a tu respiración.",
			Category:    ActivityExercise,
			Duration:    30,
			Difficulty:  DifficultyHard,
		},
	}
}

// DefaultAchievements returns the built-in milestone definitions.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:          "first-mood",
			Title:       "Primer registro",
			Description: "Registra tu primer estado de ánimo.",
			Icon:        "🌱",
			MaxProgress: 1,
			Category:    AchievementMood,
		},
		{
			ID:          "mood-week",
			Title:       "Una semana contigo",
			Description: "Registra tu estado de ánimo siete días seguidos.",
			Icon:        "📅",
			MaxProgress: 7,
			Category:    AchievementStreak,
		},
		{
			ID:          "ten-activities",
			Title:       "En movimiento",
			Description: "Completa diez actividades de bienestar.",
			Icon:        "⭐",
			MaxProgress: 10,
			Category:    AchievementActivity,
		},
		{
			ID:          "first-share",
			Title:       "Mejor acompañado",
			Description: "Comparte tu progreso por primera vez.",
			Icon:        "🤝",
			MaxProgress: 1,
			Category:    AchievementSocial,
		},
	}
}
