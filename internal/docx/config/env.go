// Управление конфигурацией конвертера через переменные окружения.
package config

import (
	"os"
	"strconv"

	"github.com/aisa-it/aiplan-docx/docx.go/internal/docx/wordfont"
)

// Exist - возвращает true, если глобальная переменная key существует, иначе false
func Exist(key string) bool {
	_, exist := os.LookupEnv(key)
	return exist
}

// GetEnv - возвращает содержимое глобальной строковой переменной.
func GetEnv(key string) string {
	val, _ := os.LookupEnv(key)
	return val
}

// GetIntEnv - возвращает содержимое глобальной числовой переменной. Если возникла ошибка при обработке, возвращается 0
func GetIntEnv(key string) int {
	val, _ := os.LookupEnv(key)
	v, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return v
}

// GetBoolEnv - возвращает содержимое глобальной логической переменной. Если возникла ошибка при обработке, возвращается false
func GetBoolEnv(key string) bool {
	val, _ := os.LookupEnv(key)
	v, err := strconv.ParseBool(val)
	if err != nil {
		return false
	}
	return v
}

// Config - настройки конвертации, собранные из окружения.
type Config struct {
	// Шрифты по умолчанию для текста без явного шрифта.
	DefaultCJKFont   string
	DefaultLatinFont string

	// Минификация HTML на выходе.
	MinifyHTML bool

	// Трассировочный уровень логирования.
	Trace bool
}

// ReadConfig читает настройки из окружения, подставляя умолчания.
func ReadConfig() Config {
	cfg := Config{
		DefaultCJKFont:   GetEnv("DOCXCONV_DEFAULT_CJK_FONT"),
		DefaultLatinFont: GetEnv("DOCXCONV_DEFAULT_LATIN_FONT"),
		MinifyHTML:       GetBoolEnv("DOCXCONV_MINIFY_HTML"),
		Trace:            GetBoolEnv("DOCXCONV_TRACE"),
	}
	if cfg.DefaultCJKFont == "" {
		cfg.DefaultCJKFont = wordfont.DefaultCJKStack
	}
	if cfg.DefaultLatinFont == "" {
		cfg.DefaultLatinFont = `"Times New Roman", serif`
	}
	return cfg
}
