package config

// CronConfig holds schedules for the built-in cron jobs (robfig/cron schedule syntax).
type CronConfig struct {
	DenormalizeSchedule string `mapstructure:"CRON_DENORMALIZE" validate:"required"`
}
