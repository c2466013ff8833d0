package infra

import "fmt"

const (
	// RedisNamespace Базовый префикс для изоляции данных проекта в Redis
	RedisNamespace = "crimewatch"
)

// GetCacheKey Генератор ключей кэша: crimewatch:cache:<resource>
func GetCacheKey(resource string) string {
	return fmt.Sprintf("%s:cache:%s", RedisNamespace, resource)
}

// GetLockKey Ключ распределенной блокировки: crimewatch:lock:<resource>
func GetLockKey(resource string) string {
	return fmt.Sprintf("%s:lock:%s", RedisNamespace, resource)
}

// GetEventChannel Канал Pub/Sub: crimewatch:events:<name>
func GetEventChannel(name string) string {
	return fmt.Sprintf("%s:events:%s", RedisNamespace, name)
}
