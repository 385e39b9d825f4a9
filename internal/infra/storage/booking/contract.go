package booking

import "github.com/nordeim/Elderly-Care-Center/pkg/txmanager"

// Переиспользуем интерфейс исполнителя запросов из txmanager
type DBExecutor = txmanager.DBExecutor
