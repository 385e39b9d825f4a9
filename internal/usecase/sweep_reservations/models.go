package sweep_reservations

// Result итог одного прогона sweeper'а
type Result struct {
	Scanned  int // Сколько истекших резерваций найдено
	Released int // Сколько мест возвращено слотам
}
