package domain

import "time"

// Client получатель услуг (подопечный либо контактное лицо семьи)
type Client struct {
	ID                 int64
	FirstName          string
	LastName           string
	Email              string
	Phone              *string
	LanguagePreference string
	ConsentVersion     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// User учетная запись (админ или опекун)
type User struct {
	ID    int64
	Name  string
	Email string
	Phone *string
}

// CaregiverProfile профиль опекуна: настройки контактов и таймзона,
// в которой считаются quiet hours.
type CaregiverProfile struct {
	ID                     int64
	UserID                 int64
	ClientID               *int64
	PreferredContactMethod string
	Timezone               string
	SMSOptIn               bool
	Preferences            map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location возвращает *time.Location профиля, UTC при пустой
// или некорректной таймзоне.
func (p *CaregiverProfile) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Facility площадка дневного центра
type Facility struct {
	ID      int64
	Name    string
	Street  string
	City    string
	Phone   *string
	Created time.Time
}

// Service услуга дневного центра; DepositCents — размер депозита,
// nil означает депозит по умолчанию из конфигурации.
type Service struct {
	ID           int64
	FacilityID   int64
	Name         string
	Description  *string
	DepositCents *int64
}
