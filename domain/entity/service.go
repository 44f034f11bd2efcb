package entity

type Service struct {
	Name     string `mapstructure:"name" validate:"required"`
	Disabled bool   `mapstructure:"disabled"`
}
