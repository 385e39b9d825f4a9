package slot

import "github.com/nordeim/Elderly-Care-Center/pkg/txmanager"

// Переиспользуем интерфейс исполнителя запросов из txmanager:
// репозиторий одинаково работает с *sql.DB и с транзакцией из контекста.
type DBExecutor = txmanager.DBExecutor
