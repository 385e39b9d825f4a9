package caregiver

import (
	"github.com/nordeim/Elderly-Care-Center/pkg/txmanager"
)

// DBExecutor интерфейс для выполнения SQL запросов
type DBExecutor = txmanager.DBExecutor
