package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pyama86/YAIB/domain/entity"
	"github.com/spf13/viper"
)

func NewConfigRepository(path string) (*Config, error) {
	viper.SetConfigFile(path)

	viper.AutomaticEnv()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}

	var c Config
	err = viper.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	valid := validator.New()
	if err = valid.Struct(c); err != nil {
		return nil, fmt.Errorf("validate config error: %w", err)
	}

	return &c, nil
}

type Config struct {
	ServiceList             []entity.Service  `mapstructure:"services" validate:"required,dive"`
	PriorityList            []entity.Priority `mapstructure:"priorities" validate:"required,dive"`
	AnnouncementChannelList []string          `mapstructure:"announcement_channels" validate:"required"`
	Store                   string            `mapstructure:"store" validate:"omitempty,oneof=memory dynamodb"`
	PlaybookURL             string            `mapstructure:"playbook_url"`
	CategoriesURL           string            `mapstructure:"categories_url"`
	TemplateURL             string            `mapstructure:"template_url"`
	MeetBaseURL             string            `mapstructure:"meet_base_url"`
}

func (c *Config) Services(_ context.Context) []entity.Service {
	var services []entity.Service
	for _, service := range c.ServiceList {
		if service.Disabled {
			continue
		}
		services = append(services, service)
	}
	return services
}

func (c *Config) Priorities(_ context.Context) []entity.Priority {
	var priorities []entity.Priority
	for _, priority := range c.PriorityList {
		if priority.Disabled {
			continue
		}
		priorities = append(priorities, priority)
	}
	return priorities
}

func (c *Config) AnnouncementChannels(_ context.Context) []string {
	return c.AnnouncementChannelList
}
