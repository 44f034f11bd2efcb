package entity

type Priority struct {
	Name     string `mapstructure:"name" validate:"required"`
	Level    int    `mapstructure:"level" validate:"required,gte=1"`
	Disabled bool   `mapstructure:"disabled"`
}
