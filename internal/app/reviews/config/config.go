package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Twilio   TwilioConfig
	SendGrid SendGridConfig
	App      AppConfig
	Jobs     JobsConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

type DatabaseConfig struct {
	Host     string // Хост PostgreSQL
	Port     string // Порт PostgreSQL
	User     string // Имя пользователя БД
	Password string // Пароль БД
	DBName   string // Имя базы данных
	SSLMode  string // Режим SSL (disable/require/verify-full)
}

type RedisConfig struct {
	Addr     string // Адрес Redis (host:port)
	Password string // Пароль Redis
	DB       int    // Номер базы Redis
}

type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий REQUEST_SENT, RATING_SUBMITTED, PUBLIC_CLICK
}

type JWTConfig struct {
	Secret string // Секретный ключ для подписи JWT токенов
}

type TwilioConfig struct {
	AccountSID  string // SID аккаунта Twilio
	AuthToken   string // Auth token Twilio
	PhoneNumber string // Номер отправителя в формате E.164
}

type SendGridConfig struct {
	APIKey    string // API ключ SendGrid
	FromEmail string // Email отправителя
	FromName  string // Имя отправителя
}

type AppConfig struct {
	PublicURL string // Базовый URL фронтенда (страница оценки /r/{token})
	APIURL    string // Базовый URL этого сервиса (трекинговые ссылки /go/{id})
}

type JobsConfig struct {
	StatsCron string // Cron-расписание снапшота статистики дашборда
}

type SeedConfig struct {
	AdminEmail     string // Email администратора, создаваемого при старте
	AdminPassword  string // Пароль администратора
	ClientEmail    string // Email тестового клиента
	ClientPassword string // Пароль тестового клиента
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "vipreviews"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "review_flow_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Twilio: TwilioConfig{
			AccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
			PhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		},
		SendGrid: SendGridConfig{
			APIKey:    getEnv("SENDGRID_API_KEY", ""),
			FromEmail: getEnv("SENDGRID_FROM_EMAIL", "noreply@example.com"),
			FromName:  getEnv("SENDGRID_FROM_NAME", "VIP Connection"),
		},
		App: AppConfig{
			PublicURL: getEnv("PUBLIC_APP_URL", "http://localhost:3000"),
			APIURL:    getEnv("API_BASE_URL", "http://localhost:8080"),
		},
		Jobs: JobsConfig{
			StatsCron: getEnv("STATS_CRON", "*/5 * * * *"),
		},
		Seed: SeedConfig{
			AdminEmail:     getEnv("SEED_ADMIN_EMAIL", "admin@gmail.com"),
			AdminPassword:  getEnv("SEED_ADMIN_PASSWORD", "admin1234"),
			ClientEmail:    getEnv("SEED_CLIENT_EMAIL", ""),
			ClientPassword: getEnv("SEED_CLIENT_PASSWORD", ""),
		},
	}, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Configured сообщает, заданы ли учётные данные Twilio.
// Без них диспетчер работает в режиме симуляции.
func (c *TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.PhoneNumber != ""
}

// Configured сообщает, задан ли API ключ SendGrid
func (c *SendGridConfig) Configured() bool {
	return c.APIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
