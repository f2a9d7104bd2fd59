package models

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type ThemeRequest struct {
	Theme Theme `json:"theme" validate:"required,oneof=light dark"`
}

type ThemeResponse struct {
	Theme   Theme  `json:"theme"`
	Message string `json:"message"`
}
